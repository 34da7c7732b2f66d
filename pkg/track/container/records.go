package container

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-binarytrack/pkg/track/model"
)

// FieldClass is the storage class of a record member.
type FieldClass int

const (
	ClassFloat FieldClass = iota
	ClassInt
	ClassUint
	ClassString
	ClassOther
)

// Field describes one member of a fixed-size record.
type Field struct {
	Name   string
	Offset int
	Size   int
	Class  FieldClass
}

// DecodeRecords turns count little-endian records of recordSize bytes into a table,
// one column per field.
func DecodeRecords(raw []byte, count, recordSize int, fields []Field) (*model.Table, error) {
	if count < 0 || recordSize <= 0 {
		return nil, errors.Wrapf(model.ErrSchema, "invalid record layout: %d records of %d bytes", count, recordSize)
	}

	if len(raw) < count*recordSize {
		return nil, errors.Wrapf(model.ErrSchema, "short buffer: %d bytes for %d records of %d bytes", len(raw), count, recordSize)
	}

	tbl := model.NewTable()
	for _, f := range fields {
		if f.Offset < 0 || f.Offset+f.Size > recordSize {
			return nil, errors.Wrapf(model.ErrSchema, "field %q outside record", f.Name)
		}

		col, err := decodeField(raw, count, recordSize, f)
		if err != nil {
			return nil, err
		}

		err = tbl.AddColumn(col)
		if err != nil {
			return nil, errors.Wrap(err, "unable to add decoded column")
		}
	}

	return tbl, nil
}

func decodeField(raw []byte, count, recordSize int, f Field) (*model.Column, error) {
	if f.Class == ClassString {
		text := make([]string, count)
		for i := range count {
			start := i*recordSize + f.Offset
			text[i] = strings.TrimRight(string(raw[start:start+f.Size]), "\x00 ")
		}

		return &model.Column{Name: f.Name, Kind: model.String, Text: text}, nil
	}

	read, kind, err := numericReader(f)
	if err != nil {
		return nil, err
	}

	values := make([]float64, count)
	for i := range count {
		start := i*recordSize + f.Offset
		values[i] = read(raw[start : start+f.Size])
	}

	return &model.Column{Name: f.Name, Kind: kind, Values: values}, nil
}

func numericReader(f Field) (func([]byte) float64, model.Kind, error) {
	le := binary.LittleEndian
	switch {
	case f.Class == ClassFloat && f.Size == 8:
		return func(b []byte) float64 { return math.Float64frombits(le.Uint64(b)) }, model.Float, nil
	case f.Class == ClassFloat && f.Size == 4:
		return func(b []byte) float64 { return float64(math.Float32frombits(le.Uint32(b))) }, model.Float, nil
	case f.Class == ClassInt && f.Size == 8:
		return func(b []byte) float64 { return float64(int64(le.Uint64(b))) }, model.Int, nil
	case f.Class == ClassInt && f.Size == 4:
		return func(b []byte) float64 { return float64(int32(le.Uint32(b))) }, model.Int, nil
	case f.Class == ClassInt && f.Size == 2:
		return func(b []byte) float64 { return float64(int16(le.Uint16(b))) }, model.Int, nil
	case f.Class == ClassInt && f.Size == 1:
		return func(b []byte) float64 { return float64(int8(b[0])) }, model.Int, nil
	case f.Class == ClassUint && f.Size == 8:
		return func(b []byte) float64 { return float64(le.Uint64(b)) }, model.Int, nil
	case f.Class == ClassUint && f.Size == 4:
		return func(b []byte) float64 { return float64(le.Uint32(b)) }, model.Int, nil
	case f.Class == ClassUint && f.Size == 2:
		return func(b []byte) float64 { return float64(le.Uint16(b)) }, model.Int, nil
	case f.Class == ClassUint && f.Size == 1:
		return func(b []byte) float64 { return float64(b[0]) }, model.Int, nil
	}

	return nil, 0, errors.Wrapf(model.ErrSchema, "field %q: unsupported class %d of size %d", f.Name, f.Class, f.Size)
}
