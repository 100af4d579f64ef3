package domain

// Role is a named privilege grouping as persisted in the roles collection.
type Role struct {
	ID   int    `json:"id"`
	Name string `json:"role"`
}

// NextID returns the id for a record appended to a collection of size count
// whose largest id is maxID. Dense collections get count+1; ids are never
// reused after a delete.
func NextID(count, maxID int) int {
	if maxID > count {
		return maxID + 1
	}
	return count + 1
}
