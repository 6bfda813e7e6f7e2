package engine

import (
	"bytes"
	"fmt"
	"io"

	"github.com/nvkalinin/widget-calendar/log"
	"github.com/nvkalinin/widget-calendar/store"
	"go.etcd.io/bbolt"
)

const varsBucket = "vars"

// Bolt хранит все переменные в одном бакете (const varsBucket) по ключу /<section>/<key>.
// Значение хранится как есть, без сериализации.
//
// Секции маленькие (несколько переменных на виджет), поэтому FindSection просто проходит курсором
// по префиксу /<section>/.
type Bolt struct {
	db *bbolt.DB
}

func NewBolt(file string) (*Bolt, error) {
	b, err := bbolt.Open(file, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot open bolt store: %w", err)
	}
	log.Printf("[DEBUG] store/bolt opened %s successfully", file)

	return &Bolt{
		db: b,
	}, nil
}

func (b *Bolt) Close() error {
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("cannot close bolt store: %w", err)
	}
	log.Printf("[DEBUG] store/bolt closed successfully")
	return nil
}

func varKey(section, key string) []byte {
	return []byte(fmt.Sprintf("/%s/%s", section, key))
}

func (b *Bolt) GetVar(section, key string) (val string, ok bool) {
	_ = b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(varsBucket))
		if bucket == nil {
			return nil
		}

		k := varKey(section, key)
		v := bucket.Get(k)
		log.Printf("[DEBUG] store/bolt get key=%s len=%d", k, len(v))
		if v == nil {
			return nil
		}

		// v действителен только внутри транзакции.
		val, ok = string(v), true
		return nil
	})
	return
}

func (b *Bolt) FindSection(section string) (vars store.Vars, ok bool) {
	_ = b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(varsBucket))
		if bucket == nil {
			return nil
		}

		vars = make(store.Vars)

		prefix := []byte(fmt.Sprintf("/%s/", section))
		log.Printf("[DEBUG] store/bolt getting cursor at %s", prefix)
		c := bucket.Cursor()

		// Ключи в bolt отсортированы по возрастанию, поэтому все ключи секции идут подряд, начиная с prefix.
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			log.Printf("[DEBUG] store/bolt cursor is at key=%s len=%d", k, len(v))
			vars[string(bytes.TrimPrefix(k, prefix))] = string(v)
		}

		ok = len(vars) > 0
		if !ok {
			vars = nil
		}
		return nil
	})
	return
}

func (b *Bolt) PutVar(section, key, val string) error {
	return b.PutSection(section, store.Vars{key: val})
}

func (b *Bolt) PutSection(section string, vars store.Vars) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(varsBucket))
		if err != nil {
			return fmt.Errorf("bolt cannot create bucket '%s': %w", varsBucket, err)
		}

		for key, val := range vars {
			k := varKey(section, key)
			log.Printf("[DEBUG] store/bolt put key=%s len=%d", k, len(val))
			if err := bucket.Put(k, []byte(val)); err != nil {
				return fmt.Errorf("bolt cannot put %s: %w", k, err)
			}
		}
		return nil
	})
}

func (b *Bolt) Backup(w io.Writer) error {
	return b.db.View(func(tx *bbolt.Tx) error {
		log.Printf("[DEBUG] store/bolt writing backup len=%d", tx.Size())
		_, err := tx.WriteTo(w)
		return err
	})
}
