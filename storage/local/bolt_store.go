package local

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creativeprojects/emldump/lib"
	"github.com/creativeprojects/emldump/mailbox"
	bolt "go.etcd.io/bbolt"
)

const (
	metadataBucket  = "metadata"
	foldersBucket   = "folders"
	runsBucket      = "runs"
	entriesBucket   = "entries"
	cursorKey       = "cursor"
	validityKey     = "validity"
	entryPrefix     = "entry-"
	runPrefix       = "run-"
	versionKey      = "version"
	boltFileVersion = 1
)

var ErrVersionMismatch = errors.New("unsupported index file version")

// Cursor is the resume position of a folder: every message up to ID has been archived
type Cursor struct {
	ID          mailbox.MessageID
	UidValidity uint32
	UpdatedAt   time.Time
}

// BoltStore is the archive index: one bucket per folder, holding the cursor and the archived entries
type BoltStore struct {
	dbFile string
	db     *bolt.DB
	log    lib.Logger
}

func NewBoltStore(filename string) (*BoltStore, error) {
	return NewBoltStoreWithLogger(filename, nil)
}

func NewBoltStoreWithLogger(filename string, logger lib.Logger) (*BoltStore, error) {
	if logger == nil {
		logger = &lib.NoLog{}
	}
	options := *bolt.DefaultOptions
	options.Timeout = 10 * time.Second

	err := os.MkdirAll(filepath.Dir(filename), 0700)
	if err != nil {
		return nil, fmt.Errorf("cannot open %q: %w", filename, err)
	}

	db, err := bolt.Open(filename, 0600, &options)
	if err != nil {
		return nil, fmt.Errorf("cannot open %q: %w", filename, err)
	}

	return &BoltStore{
		dbFile: filename,
		db:     db,
		log:    logger,
	}, nil
}

func (s *BoltStore) Exists() bool {
	_, err := os.Stat(s.dbFile)
	return err == nil
}

// Init creates the buckets and checks the file version
func (s *BoltStore) Init() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(metadataBucket))
		if err != nil {
			return err
		}
		if data := bucket.Get([]byte(versionKey)); data != nil {
			version, err := DeserializeInt(data)
			if err != nil {
				return err
			}
			if version != boltFileVersion {
				return fmt.Errorf("%w: %d", ErrVersionMismatch, version)
			}
		} else {
			version, err := SerializeInt(boltFileVersion)
			if err != nil {
				return err
			}
			err = bucket.Put([]byte(versionKey), version)
			if err != nil {
				return err
			}
		}
		if _, err = tx.CreateBucketIfNotExists([]byte(foldersBucket)); err != nil {
			return err
		}
		_, err = tx.CreateBucketIfNotExists([]byte(runsBucket))
		return err
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Folders returns the names of the folders present in the index
func (s *BoltStore) Folders() ([]string, error) {
	list := make([]string, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(foldersBucket))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			// if there's a value it's not a bucket
			if v != nil {
				return nil
			}
			list = append(list, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Cursor returns nil when the folder has never been archived
func (s *BoltStore) Cursor(folder string) (*Cursor, error) {
	var cursor *Cursor
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := getFolderBucket(tx, folder)
		if bucket == nil {
			return nil
		}
		data := bucket.Get([]byte(cursorKey))
		if data == nil {
			return nil
		}
		var err error
		cursor, err = DeserializeObject[Cursor](data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cursor, nil
}

// Checkpoint returns the ID following the cursor, or zero when the folder has no cursor
// or when the cursor was saved under another UIDVALIDITY.
func (s *BoltStore) Checkpoint(folder string, uidValidity uint32) (mailbox.MessageID, error) {
	cursor, err := s.Cursor(folder)
	if err != nil {
		return mailbox.EmptyMessageID, err
	}
	if cursor == nil || cursor.UidValidity != uidValidity {
		return mailbox.EmptyMessageID, nil
	}
	return cursor.ID.Next(), nil
}

func (s *BoltStore) ResetCursor(folder string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := getFolderBucket(tx, folder)
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(cursorKey))
	})
}

// Entry returns nil when the message was never archived under this UIDVALIDITY:
// an entry recorded under another UIDVALIDITY describes a different message.
func (s *BoltStore) Entry(folder string, uidValidity uint32, id mailbox.MessageID) (*mailbox.Entry, error) {
	var entry *mailbox.Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := getFolderBucket(tx, folder)
		if bucket == nil {
			return nil
		}
		data := bucket.Get([]byte(validityKey))
		if data == nil {
			return nil
		}
		stored, err := DeserializeInt(data)
		if err != nil {
			return err
		}
		if uint32(stored) != uidValidity {
			return nil
		}
		entries := bucket.Bucket([]byte(entriesBucket))
		if entries == nil {
			return nil
		}
		data = entries.Get(SerializeUID(entryPrefix, uint64(id)))
		if data == nil {
			return nil
		}
		entry, err = DeserializeObject[mailbox.Entry](data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// CountEntries returns the number of messages archived from the folder
func (s *BoltStore) CountEntries(folder string) (int, error) {
	count := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := getFolderBucket(tx, folder)
		if bucket == nil {
			return nil
		}
		entries := bucket.Bucket([]byte(entriesBucket))
		if entries == nil {
			return nil
		}
		count = entries.Stats().KeyN
		return nil
	})
	return count, err
}

// PutEntry records an archived message. When the UIDVALIDITY of the folder changed,
// the previous entries and cursor are discarded: their IDs now designate other messages.
func (s *BoltStore) PutEntry(folder string, uidValidity uint32, entry mailbox.Entry, advance bool) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		root, err := tx.CreateBucketIfNotExists([]byte(foldersBucket))
		if err != nil {
			return err
		}
		bucket, err := root.CreateBucketIfNotExists([]byte(folder))
		if err != nil {
			return err
		}
		bucket, err = s.checkValidity(root, bucket, folder, uidValidity)
		if err != nil {
			return err
		}
		entries, err := bucket.CreateBucketIfNotExists([]byte(entriesBucket))
		if err != nil {
			return err
		}
		data, err := SerializeObject(&entry)
		if err != nil {
			return err
		}
		err = entries.Put(SerializeUID(entryPrefix, uint64(entry.ID)), data)
		if err != nil {
			return fmt.Errorf("cannot save entry: %w", err)
		}
		if !advance {
			return nil
		}
		cursor := &Cursor{}
		if data := bucket.Get([]byte(cursorKey)); data != nil {
			cursor, err = DeserializeObject[Cursor](data)
			if err != nil {
				return err
			}
		}
		if entry.ID <= cursor.ID {
			return nil
		}
		cursor.ID = entry.ID
		cursor.UidValidity = uidValidity
		cursor.UpdatedAt = time.Now()
		data, err = SerializeObject(cursor)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(cursorKey), data)
	})
}

func (s *BoltStore) checkValidity(root, bucket *bolt.Bucket, folder string, uidValidity uint32) (*bolt.Bucket, error) {
	data := bucket.Get([]byte(validityKey))
	if data != nil {
		stored, err := DeserializeInt(data)
		if err != nil {
			return nil, err
		}
		if uint32(stored) == uidValidity {
			return bucket, nil
		}
		s.log.Printf("UIDVALIDITY of folder %q changed from %d to %d: clearing index", folder, stored, uidValidity)
		err = root.DeleteBucket([]byte(folder))
		if err != nil {
			return nil, err
		}
		bucket, err = root.CreateBucket([]byte(folder))
		if err != nil {
			return nil, err
		}
	}
	data, err := SerializeInt(int(uidValidity))
	if err != nil {
		return nil, err
	}
	return bucket, bucket.Put([]byte(validityKey), data)
}

// AddRun appends a run to the history
func (s *BoltStore) AddRun(run mailbox.Run) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(runsBucket))
		if err != nil {
			return err
		}
		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("cannot get next run ID: %w", err)
		}
		data, err := SerializeObject(&run)
		if err != nil {
			return err
		}
		return bucket.Put(SerializeUID(runPrefix, seq), data)
	})
}

// History returns all the runs (of all folders) from the oldest
func (s *BoltStore) History() (*mailbox.History, error) {
	history := &mailbox.History{
		Runs: make([]mailbox.Run, 0),
	}
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(runsBucket))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(key, value []byte) error {
			if !bytes.HasPrefix(key, []byte(runPrefix)) {
				return nil
			}
			run, err := DeserializeObject[mailbox.Run](value)
			if err != nil {
				return err
			}
			history.Runs = append(history.Runs, *run)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	history.Sort()
	return history, nil
}

func getFolderBucket(tx *bolt.Tx, folder string) *bolt.Bucket {
	root := tx.Bucket([]byte(foldersBucket))
	if root == nil {
		return nil
	}
	return root.Bucket([]byte(folder))
}
