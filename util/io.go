package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

func WriteBytesToFile(data []byte, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}

func ReadBytesFromFile(file string) ([]byte, error) {
	_, err := os.Stat(file)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("file not found: %v", file)
	}
	return os.ReadFile(file)
}

func WriteJSONToFile[T any](value T, file string) error {
	data, err := json.MarshalIndent(value, "", "    ")
	if err != nil {
		return err
	}
	return WriteBytesToFile(data, file)
}

func ReadJSONFromFile[T any](file string) (T, error) {
	var value T
	data, err := ReadBytesFromFile(file)
	if err != nil {
		return value, err
	}
	err = json.Unmarshal(data, &value)
	return value, err
}

func ReadJSON[T any](reader io.Reader) (T, error) {
	var value T
	data, err := io.ReadAll(reader)
	if err != nil {
		return value, err
	}
	err = json.Unmarshal(data, &value)
	return value, err
}

func WriteJSON[T any](writer io.Writer, value T) error {
	data, err := json.MarshalIndent(value, "", "    ")
	if err != nil {
		return err
	}
	_, err = writer.Write(data)
	return err
}
