package misc

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

func ReadFile(fileName string) ([]byte, error) {
	if fileName == "" {
		return nil, fmt.Errorf("%w: no filename supplied", ErrInvalidArgument)
	}
	// open file for reading
	file, err := OpenFile(fileName)
	if err != nil {
		return nil, err
	}
	// read contents from open file
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("unable to read %s - %w", fileName, err)
	}
	// close file
	err = file.Close()
	if err != nil {
		return nil, fmt.Errorf("unable to close %s - %w", fileName, err)
	}

	return fileBytes, nil
}

// OpenFile opens fileName for reading. Any failure to open is reported as ErrFileNotFound.
func OpenFile(fileName string) (*os.File, error) {
	if fileName == "" {
		return nil, fmt.Errorf("%w: no filename supplied", ErrInvalidArgument)
	}
	file, err := os.Open(fileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, fileName)
		}
		return nil, fmt.Errorf("%w: unable to open %s - %v", ErrFileNotFound, fileName, err)
	}
	return file, nil
}

func WriteFile(fileName string, contents []byte) (int, error) {
	if fileName == "" {
		return 0, fmt.Errorf("%w: no filename supplied", ErrInvalidArgument)
	}
	// create/truncate file for writing
	file, err := os.Create(fileName)
	if err != nil {
		return 0, fmt.Errorf("unable to create file %s - %w", fileName, err)
	}
	// write contents to open file
	bytesWritten, err := file.Write(contents)
	if err != nil {
		file.Close()
		return bytesWritten, fmt.Errorf("unable to write file %s - %w", fileName, err)
	}
	// close file
	err = file.Close()
	if err != nil {
		return bytesWritten, fmt.Errorf("unable to close file %s - %w", fileName, err)
	}

	return bytesWritten, nil
}
