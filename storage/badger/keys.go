package badger

import "fmt"

// Key prefixes for different data types
const (
	ingredientRecordPrefix = "ingrec"
	ingredientAliasPrefix  = "ingali"
)

// makeIngredientKey generates the primary key for an ingredient record.
// The normalized name is the unique key, so a prefix scan over
// ingredientRecordPrefix yields records in name order.
func makeIngredientKey(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s", ingredientRecordPrefix, name))
}

// makeAliasKey generates an index key mapping an alias to the owning
// record's name.
func makeAliasKey(alias string) []byte {
	return []byte(fmt.Sprintf("%s:%s", ingredientAliasPrefix, alias))
}
