package local

import (
	"bytes"
	"encoding/gob"
	"errors"
	"strconv"
)

func SerializeInt(value int) ([]byte, error) {
	buffer := &bytes.Buffer{}
	encoder := gob.NewEncoder(buffer)
	err := encoder.Encode(value)
	return buffer.Bytes(), err
}

func DeserializeInt(input []byte) (int, error) {
	output := 0
	decoder := gob.NewDecoder(bytes.NewBuffer(input))
	err := decoder.Decode(&output)
	return output, err
}

func SerializeObject[T any](data *T) ([]byte, error) {
	if data == nil {
		return nil, errors.New("cannot serialize nil object")
	}
	buffer := &bytes.Buffer{}
	encoder := gob.NewEncoder(buffer)
	err := encoder.Encode(data)
	return buffer.Bytes(), err
}

func DeserializeObject[T any](input []byte) (*T, error) {
	output := new(T)
	decoder := gob.NewDecoder(bytes.NewBuffer(input))
	err := decoder.Decode(output)
	return output, err
}

// SerializeUID returns a key that sorts in numerical order (zero padded)
func SerializeUID(prefix string, uid uint64) []byte {
	return []byte(prefix + padUID(uid))
}

func DeserializeUID(prefix string, key []byte) (uint64, error) {
	key = bytes.TrimPrefix(key, []byte(prefix))
	return strconv.ParseUint(string(key), 10, 64)
}

func padUID(uid uint64) string {
	value := strconv.FormatUint(uid, 10)
	if len(value) >= 20 {
		return value
	}
	return string(bytes.Repeat([]byte{'0'}, 20-len(value))) + value
}
