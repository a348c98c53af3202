package redis

import "fmt"

// Key prefix for all match-tracker data
const keyPrefix = "timeu6"

// itemKey namespaces a store key so Clear only touches our own data
func itemKey(key string) string {
	return fmt.Sprintf("%s:item:%s", keyPrefix, key)
}

// itemPattern matches every key written through itemKey
func itemPattern() string {
	return fmt.Sprintf("%s:item:*", keyPrefix)
}
