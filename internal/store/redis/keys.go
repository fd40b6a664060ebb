package redis

import "fmt"

// Key generation functions for records and indexes

// recordKey returns the Redis key for one collection record
func (d *Driver) recordKey(collection, key string) string {
	return fmt.Sprintf("%s:%s:%s", d.cfg.KeyPrefix, collection, key)
}

// keySetKey returns the Redis key for the SET of all record keys in a collection
func (d *Driver) keySetKey(collection string) string {
	return fmt.Sprintf("%s:idx:keys:%s", d.cfg.KeyPrefix, collection)
}

// indexKey returns the Redis key for a secondary index value.
// Unique indexes store the record key as a string; non-unique indexes
// store a SET of record keys.
func (d *Driver) indexKey(collection, index, value string) string {
	return fmt.Sprintf("%s:idx:%s:%s:%s", d.cfg.KeyPrefix, collection, index, value)
}
