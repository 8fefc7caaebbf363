package database

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexSpec mô tả một index đọc được từ struct tag `index`.
//
// Cú pháp tag (nhiều cấu hình cách nhau bởi ';', tham số cách nhau bởi ','):
//
//	index:"unique"                 -> {field}_unique
//	index:"single:1" / "single:-1" -> {field}_single
//	index:"ttl:3600"               -> {field}_ttl
//	index:"compound:name_unique"   -> index ghép theo tên nhóm, tên chứa "_unique" thì unique
type IndexSpec struct {
	Name   string
	Keys   bson.D
	Unique bool
	Sparse bool
	TTL    *int32
}

// parseIndexTag tách tag thành danh sách cấu hình key -> value
func parseIndexTag(tag string) []map[string]string {
	var result []map[string]string
	for _, part := range strings.Split(tag, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		entry := map[string]string{}
		for _, sub := range strings.Split(part, ",") {
			kv := strings.SplitN(strings.TrimSpace(sub), ":", 2)
			if len(kv) == 2 {
				entry[kv[0]] = kv[1]
			} else {
				entry[kv[0]] = ""
			}
		}
		result = append(result, entry)
	}
	return result
}

func parseOrder(v string) int {
	if v == "-1" {
		return -1
	}
	return 1
}

// bsonName lấy tên field trong bson tag, bỏ các option như omitempty
func bsonName(field reflect.StructField) string {
	name := strings.Split(field.Tag.Get("bson"), ",")[0]
	if name == "-" {
		return ""
	}
	return name
}

// IndexSpecsFromModel đọc toàn bộ index khai báo trên model, thứ tự ổn định theo tên
func IndexSpecsFromModel(model interface{}) ([]IndexSpec, error) {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be a struct, got %s", t.Kind())
	}

	var specs []IndexSpec
	compound := map[string]*IndexSpec{}
	var compoundOrder []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, ok := field.Tag.Lookup("index")
		if !ok {
			continue
		}
		name := bsonName(field)
		if name == "" {
			continue
		}

		for _, cfg := range parseIndexTag(tag) {
			_, sparse := cfg["sparse"]

			if _, ok := cfg["unique"]; ok {
				specs = append(specs, IndexSpec{Name: name + "_unique", Keys: bson.D{{Key: name, Value: 1}}, Unique: true, Sparse: sparse})
			}
			if v, ok := cfg["single"]; ok {
				specs = append(specs, IndexSpec{Name: name + "_single", Keys: bson.D{{Key: name, Value: parseOrder(v)}}})
			}
			if v, ok := cfg["ttl"]; ok {
				ttl, err := strconv.Atoi(v)
				if err != nil {
					return nil, fmt.Errorf("invalid ttl on %s: %w", name, err)
				}
				secs := int32(ttl)
				specs = append(specs, IndexSpec{Name: name + "_ttl", Keys: bson.D{{Key: name, Value: 1}}, TTL: &secs})
			}
			if group, ok := cfg["compound"]; ok {
				spec, exists := compound[group]
				if !exists {
					spec = &IndexSpec{Name: group, Unique: strings.Contains(group, "_unique")}
					compound[group] = spec
					compoundOrder = append(compoundOrder, group)
				}
				spec.Keys = append(spec.Keys, bson.E{Key: name, Value: parseOrder(cfg["order"])})
				spec.Sparse = spec.Sparse || sparse
			}
		}
	}

	for _, group := range compoundOrder {
		specs = append(specs, *compound[group])
	}
	sort.SliceStable(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs, nil
}

func (s IndexSpec) options() *options.IndexOptions {
	opts := options.Index().SetName(s.Name)
	if s.Unique {
		opts.SetUnique(true)
	}
	if s.Sparse {
		opts.SetSparse(true)
	}
	if s.TTL != nil {
		opts.SetExpireAfterSeconds(*s.TTL)
	}
	return opts
}

// sameIndex so sánh keys và unique của index đang có với spec
func sameIndex(existing bson.M, spec IndexSpec) bool {
	keys, ok := existing["key"].(bson.M)
	if !ok || len(keys) != len(spec.Keys) {
		return false
	}
	for _, k := range spec.Keys {
		v, ok := keys[k.Key]
		if !ok {
			return false
		}
		var n int
		switch ev := v.(type) {
		case int32:
			n = int(ev)
		case int64:
			n = int(ev)
		case float64:
			n = int(ev)
		default:
			return false
		}
		if n != k.Value.(int) {
			return false
		}
	}
	unique, _ := existing["unique"].(bool)
	return unique == spec.Unique
}

// CreateIndexes tạo (hoặc thay thế nếu lệch cấu hình) các index khai báo trên model
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model interface{}) error {
	log := logger.WithModule("database").WithField("collection", collection.Name())

	specs, err := IndexSpecsFromModel(model)
	if err != nil {
		return err
	}

	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list indexes: %w", err)
	}
	defer cursor.Close(ctx)

	existing := map[string]bson.M{}
	for cursor.Next(ctx) {
		var info bson.M
		if err := cursor.Decode(&info); err != nil {
			return fmt.Errorf("failed to decode index info: %w", err)
		}
		if name, ok := info["name"].(string); ok {
			existing[name] = info
		}
	}

	for _, spec := range specs {
		if info, ok := existing[spec.Name]; ok {
			if sameIndex(info, spec) {
				continue
			}
			if _, err := collection.Indexes().DropOne(ctx, spec.Name); err != nil {
				return fmt.Errorf("failed to drop index %s: %w", spec.Name, err)
			}
			log.WithField("index", spec.Name).Info("Dropped outdated index")
		}
		if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: spec.Keys, Options: spec.options()}); err != nil {
			return fmt.Errorf("failed to create index %s: %w", spec.Name, err)
		}
		log.WithField("index", spec.Name).Info("Created index")
	}
	return nil
}
