package mongo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accesshub/accounts-api/internal/core/domain"
)

func TestDocumentConversionRoundTrip(t *testing.T) {
	in := []json.RawMessage{
		json.RawMessage(`{"id":1,"name":"Root","email":"root@example.com","password":"$2a$10$x","role":"superadmin"}`),
		json.RawMessage(`{"id":2,"role":"admin"}`),
	}

	docs, err := toDocuments(in)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, "id", docs[0][0].Key)

	out, err := fromDocuments(docs)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.JSONEq(t, string(in[0]), string(out[0]))
	require.JSONEq(t, string(in[1]), string(out[1]))
}

func TestToDocumentsRejectsBadRecords(t *testing.T) {
	_, err := toDocuments([]json.RawMessage{json.RawMessage(`{"id":`)})
	require.ErrorIs(t, err, domain.ErrCorruptData)
}

func TestFromDocumentsEmpty(t *testing.T) {
	out, err := fromDocuments(nil)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Empty(t, out)
}
