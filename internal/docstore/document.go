package docstore

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Document is a stored JSON object with store-assigned timestamps.
type Document struct {
	Path       string          `json:"path"`
	ID         string          `json:"id"`
	Data       json.RawMessage `json:"data"`
	CreateTime time.Time       `json:"create_time"`
	UpdateTime time.Time       `json:"update_time"`
}

// DataTo decodes the document data into v.
func (d Document) DataTo(v any) error {
	if err := json.Unmarshal(d.Data, v); err != nil {
		return fmt.Errorf("decode document %s: %w", d.Path, err)
	}
	return nil
}

// Collection returns the collection path the document belongs to.
func (d Document) Collection() string {
	collection, _, _ := SplitPath(d.Path)
	return collection
}

// OpKind is the kind of a batched write.
type OpKind string

const (
	OpSet    OpKind = "set"
	OpCreate OpKind = "create"
	OpUpdate OpKind = "update"
	OpDelete OpKind = "delete"
)

// WriteOp is one operation of a [Store.BatchWrite].
type WriteOp struct {
	Kind   OpKind         `json:"kind"`
	Path   string         `json:"path"`
	Data   any            `json:"data,omitempty"`
	Fields map[string]any `json:"fields,omitempty"`
}

// SetOp replaces the document at path.
func SetOp(path string, data any) WriteOp {
	return WriteOp{Kind: OpSet, Path: path, Data: data}
}

// CreateOp creates the document at path and fails the whole batch with
// [ErrAlreadyExists] if it is already present.
func CreateOp(path string, data any) WriteOp {
	return WriteOp{Kind: OpCreate, Path: path, Data: data}
}

// UpdateOp merges fields into an existing document.
func UpdateOp(path string, fields map[string]any) WriteOp {
	return WriteOp{Kind: OpUpdate, Path: path, Fields: fields}
}

// DeleteOp removes the document at path.
func DeleteOp(path string) WriteOp {
	return WriteOp{Kind: OpDelete, Path: path}
}

// Join builds a path from segments.
func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

// SplitPath splits a document path into its collection and document ID.
func SplitPath(path string) (collection, id string, err error) {
	if err := ValidateDocumentPath(path); err != nil {
		return "", "", err
	}
	i := strings.LastIndexByte(path, '/')
	return path[:i], path[i+1:], nil
}

// ValidateDocumentPath checks that path names a document.
func ValidateDocumentPath(path string) error {
	n, err := countSegments(path)
	if err != nil {
		return err
	}
	if n%2 != 0 {
		return fmt.Errorf("%w: %q is not a document path", ErrInvalidPath, path)
	}
	return nil
}

// ValidateCollectionPath checks that path names a collection.
func ValidateCollectionPath(path string) error {
	n, err := countSegments(path)
	if err != nil {
		return err
	}
	if n%2 != 1 {
		return fmt.Errorf("%w: %q is not a collection path", ErrInvalidPath, path)
	}
	return nil
}

func countSegments(path string) (int, error) {
	if path == "" {
		return 0, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	segments := strings.Split(path, "/")
	if slices.Contains(segments, "") {
		return 0, fmt.Errorf("%w: %q has an empty segment", ErrInvalidPath, path)
	}
	return len(segments), nil
}

// EncodeData marshals v and checks that it is a JSON object.
func EncodeData(v any) (json.RawMessage, error) {
	if raw, ok := v.(json.RawMessage); ok {
		return checkObject(raw)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: encode document: %w", ErrWriteRejected, err)
	}
	return checkObject(raw)
}

func checkObject(raw json.RawMessage) (json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, fmt.Errorf("%w: document data must be a JSON object", ErrWriteRejected)
	}
	return raw, nil
}

// MergeFields applies a top-level merge patch to a JSON object.
func MergeFields(data json.RawMessage, fields map[string]any) (json.RawMessage, error) {
	obj := map[string]json.RawMessage{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, fmt.Errorf("%w: stored document is not an object: %w", ErrWriteRejected, err)
		}
	}

	for k, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: encode field %s: %w", ErrWriteRejected, k, err)
		}
		obj[k] = raw
	}

	merged, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteRejected, err)
	}
	return merged, nil
}

// SortDocuments orders a snapshot by creation time, then path.
func SortDocuments(docs []Document) {
	slices.SortStableFunc(docs, func(a, b Document) int {
		if c := a.CreateTime.Compare(b.CreateTime); c != 0 {
			return c
		}
		return strings.Compare(a.Path, b.Path)
	})
}
