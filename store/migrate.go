package store

import (
	"encoding/binary"

	bolt "go.etcd.io/bbolt"
)

var schemaVersionKey = []byte("schema_version")

// migrations run in order inside one transaction. Index i brings the store
// from version i to version i+1.
var migrations = []func(c *Client, tx *bolt.Tx) error{
	createBuckets,
	seedDefaultUser,
}

func createBuckets(_ *Client, tx *bolt.Tx) error {
	for _, name := range []string{
		usersBucket,
		tasksBucket,
		sessionsBucket,
		notesBucket,
		habitsBucket,
	} {
		if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
			return err
		}
	}

	return nil
}

func seedDefaultUser(c *Client, tx *bolt.Tx) error {
	key := []byte(c.defaultUser)

	if tx.Bucket([]byte(usersBucket)).Get(key) != nil {
		return nil
	}

	return put(tx, usersBucket, key, SampleUser(c.defaultUser, c.now()))
}

func schemaVersion(meta *bolt.Bucket) uint64 {
	v := meta.Get(schemaVersionKey)
	if len(v) != 8 {
		return 0
	}

	return binary.BigEndian.Uint64(v)
}

// migrate applies every migration newer than the stored schema version.
func (c *Client) migrate(tx *bolt.Tx) error {
	meta, err := tx.CreateBucketIfNotExists([]byte(metaBucket))
	if err != nil {
		return err
	}

	current := schemaVersion(meta)
	if current >= uint64(len(migrations)) {
		return nil
	}

	for i := current; i < uint64(len(migrations)); i++ {
		if err := migrations[i](c, tx); err != nil {
			return errMigrate.Fmt(i + 1).Wrap(err)
		}
	}

	v := make([]byte, 8)
	binary.BigEndian.PutUint64(v, uint64(len(migrations)))

	return meta.Put(schemaVersionKey, v)
}
