package store

import (
	"context"
	"fmt"
	"math/rand"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is a concurrency-safe in-memory Store used by tests and the
// development fallback. Filters support field equality; updates support $set;
// Aggregate covers the pipeline shapes the services issue ($match, $sample,
// $group with $sum, $count).
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]bson.M
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]bson.M)}
}

func (m *Memory) FindOne(_ context.Context, collection string, filter bson.M, out any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, doc := range m.docs[collection] {
		if matches(doc, filter) {
			return decodeDoc(doc, out)
		}
	}
	return ErrNoDocuments
}

func (m *Memory) Find(_ context.Context, collection string, filter bson.M, opts FindOptions, out any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []bson.M
	for _, doc := range m.docs[collection] {
		if matches(doc, filter) {
			matched = append(matched, doc)
		}
	}

	if opts.Sample > 0 {
		matched = sampleDocs(matched, int(opts.Sample))
	} else if opts.Limit > 0 && int64(len(matched)) > opts.Limit {
		matched = matched[:opts.Limit]
	}

	return decodeDocs(matched, out)
}

func (m *Memory) InsertOne(_ context.Context, collection string, doc any) (string, error) {
	normalized, err := normalize(doc)
	if err != nil {
		return "", err
	}

	id, ok := normalized["_id"].(primitive.ObjectID)
	if !ok {
		id = primitive.NewObjectID()
		normalized["_id"] = id
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[collection] = append(m.docs[collection], normalized)
	return id.Hex(), nil
}

func (m *Memory) UpdateOne(_ context.Context, collection string, filter, update bson.M, upsert bool) (int64, error) {
	set, _ := update["$set"].(bson.M)

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, doc := range m.docs[collection] {
		if !matches(doc, filter) {
			continue
		}
		merged := mergeSet(doc, set)
		normalized, err := normalize(merged)
		if err != nil {
			return 0, err
		}
		m.docs[collection][i] = normalized
		return 1, nil
	}

	if !upsert {
		return 0, nil
	}

	doc := mergeSet(filter, set)
	if _, ok := doc["_id"]; !ok {
		doc["_id"] = primitive.NewObjectID()
	}
	normalized, err := normalize(doc)
	if err != nil {
		return 0, err
	}
	m.docs[collection] = append(m.docs[collection], normalized)
	return 0, nil
}

func (m *Memory) DeleteOne(_ context.Context, collection string, filter bson.M) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := m.docs[collection]
	for i, doc := range docs {
		if matches(doc, filter) {
			m.docs[collection] = append(docs[:i:i], docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *Memory) Aggregate(_ context.Context, collection string, pipeline []bson.M, out any) error {
	m.mu.RLock()
	working := append([]bson.M(nil), m.docs[collection]...)
	m.mu.RUnlock()

	for _, stage := range pipeline {
		for name, raw := range stage {
			var err error
			switch name {
			case "$match":
				filter, _ := raw.(bson.M)
				working = filterDocs(working, filter)
			case "$sample":
				spec, _ := raw.(bson.M)
				working = sampleDocs(working, toInt(spec["size"]))
			case "$group":
				spec, _ := raw.(bson.M)
				working, err = groupDocs(working, spec)
			case "$count":
				field, _ := raw.(string)
				working = []bson.M{{field: int64(len(working))}}
			default:
				err = fmt.Errorf("unsupported pipeline stage %q", name)
			}
			if err != nil {
				return err
			}
		}
	}

	return decodeDocs(working, out)
}

func (m *Memory) EstimatedCount(_ context.Context, collection string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.docs[collection])), nil
}

func filterDocs(docs []bson.M, filter bson.M) []bson.M {
	var matched []bson.M
	for _, doc := range docs {
		if matches(doc, filter) {
			matched = append(matched, doc)
		}
	}
	return matched
}

func sampleDocs(docs []bson.M, n int) []bson.M {
	if n >= len(docs) {
		return docs
	}
	sampled := make([]bson.M, 0, n)
	for _, i := range rand.Perm(len(docs))[:n] {
		sampled = append(sampled, docs[i])
	}
	return sampled
}

// groupDocs evaluates a $group stage whose accumulators are all $sum, which is
// the only accumulator the services use (revenue totals and role counts).
func groupDocs(docs []bson.M, spec bson.M) ([]bson.M, error) {
	idExpr := spec["_id"]

	type group struct {
		id     any
		sums   map[string]float64
		counts map[string]int64
	}
	groups := make(map[string]*group)
	var order []string

	for _, doc := range docs {
		idVal := resolveExpr(doc, idExpr)
		key := fmt.Sprint(idVal)
		g, ok := groups[key]
		if !ok {
			g = &group{id: idVal, sums: map[string]float64{}, counts: map[string]int64{}}
			groups[key] = g
			order = append(order, key)
		}
		for field, rawAcc := range spec {
			if field == "_id" {
				continue
			}
			acc, ok := rawAcc.(bson.M)
			if !ok {
				return nil, fmt.Errorf("unsupported accumulator for %q", field)
			}
			sumExpr, ok := acc["$sum"]
			if !ok {
				return nil, fmt.Errorf("unsupported accumulator for %q", field)
			}
			if path, ok := sumExpr.(string); ok {
				g.sums[field] += toFloat(resolveExpr(doc, path))
			} else {
				g.counts[field] += int64(toInt(sumExpr))
			}
		}
	}

	var result []bson.M
	for _, key := range order {
		g := groups[key]
		doc := bson.M{"_id": g.id}
		for field, sum := range g.sums {
			doc[field] = sum
		}
		for field, count := range g.counts {
			doc[field] = count
		}
		result = append(result, doc)
	}
	return result, nil
}

// resolveExpr resolves "$field" references against doc; any other expression
// evaluates to itself.
func resolveExpr(doc bson.M, expr any) any {
	if path, ok := expr.(string); ok && len(path) > 1 && path[0] == '$' {
		return doc[path[1:]]
	}
	return expr
}

func matches(doc, filter bson.M) bool {
	for key, want := range filter {
		if !valuesEqual(doc[key], want) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	if af, aok := asFloat(a); aok {
		bf, bok := asFloat(b)
		return bok && af == bf
	}
	return reflect.DeepEqual(a, b)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func toFloat(v any) float64 {
	f, _ := asFloat(v)
	return f
}

func toInt(v any) int {
	return int(toFloat(v))
}

// normalize runs doc through a BSON round-trip so stored documents carry the
// same primitive types the Mongo backend would return.
func normalize(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var normalized bson.M
	if err := bson.Unmarshal(raw, &normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

func mergeSet(doc, set bson.M) bson.M {
	merged := make(bson.M, len(doc)+len(set))
	for k, v := range doc {
		merged[k] = v
	}
	for k, v := range set {
		merged[k] = v
	}
	return merged
}

func decodeDoc(doc bson.M, out any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

func decodeDocs(docs []bson.M, out any) error {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("out must be a pointer to a slice, got %T", out)
	}
	slice := v.Elem()
	slice.Set(reflect.MakeSlice(slice.Type(), 0, len(docs)))
	for _, doc := range docs {
		elem := reflect.New(slice.Type().Elem())
		if err := decodeDoc(doc, elem.Interface()); err != nil {
			return err
		}
		slice.Set(reflect.Append(slice, elem.Elem()))
	}
	v.Elem().Set(slice)
	return nil
}
