package utils

import (
	"errors"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

func newDocumentDecoder(input string) *yaml.Decoder {
	return yaml.NewDecoder(strings.NewReader(input))
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}
