// package basesvc cung cấp các service cơ bản cho việc tương tác với MongoDB
package basesvc

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AashuKumar3451/AI-Candidate-Assessment-System/internal/common"
)

// UpdateData định nghĩa kiểu dữ liệu cho partial update
type UpdateData struct {
	Set      map[string]interface{} `bson:"$set,omitempty"`      // Các trường cần update
	Unset    map[string]interface{} `bson:"$unset,omitempty"`    // Các trường cần xóa
	Push     map[string]interface{} `bson:"$push,omitempty"`     // Thêm vào cuối array
	AddToSet map[string]interface{} `bson:"$addToSet,omitempty"` // Thêm vào set nếu chưa có
	Pull     map[string]interface{} `bson:"$pull,omitempty"`     // Xóa khỏi array
}

// IsEmpty true khi không có operator nào
func (u *UpdateData) IsEmpty() bool {
	return u == nil || (len(u.Set) == 0 && len(u.Unset) == 0 && len(u.Push) == 0 && len(u.AddToSet) == 0 && len(u.Pull) == 0)
}

// BaseServiceMongoImpl là repository generic cho một collection.
// Mọi lỗi driver đều đi qua common.ConvertMongoError.
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewBaseServiceMongo tạo mới một BaseServiceMongoImpl
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{
		collection: collection,
		now:        time.Now,
	}
}

// InsertOne tạo mới một bản ghi, tự gán createdAt/updatedAt (UnixMilli)
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T

	raw, err := bson.Marshal(data)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}
	doc := bson.M{}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return zero, common.ErrInvalidFormat
	}

	now := s.now().UnixMilli()
	doc["createdAt"] = now
	doc["updatedAt"] = now

	result, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	var created T
	if err := s.collection.FindOne(ctx, bson.M{"_id": result.InsertedID}).Decode(&created); err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return created, nil
}

// FindOne tìm một bản ghi theo điều kiện lọc
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var result T
	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.FindOne()
	}

	if err := s.collection.FindOne(ctx, filter, opts).Decode(&result); err != nil {
		var zero T
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// FindOneById tìm một document theo ObjectId
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

// Find tìm tất cả bản ghi theo điều kiện lọc, luôn trả về slice khác nil
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.Find()
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}

// FindManyByIds tìm nhiều document theo danh sách ID
func (s *BaseServiceMongoImpl[T]) FindManyByIds(ctx context.Context, ids []primitive.ObjectID) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	return s.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

// FindOneAndUpdate cập nhật có điều kiện và trả về document SAU khi cập nhật.
// Điều kiện tiền đề (CAS) đặt trong filter: không khớp thì trả về common.ErrNotFound.
func (s *BaseServiceMongoImpl[T]) FindOneAndUpdate(ctx context.Context, filter interface{}, update *UpdateData, opts *options.FindOneAndUpdateOptions) (T, error) {
	var zero T
	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.FindOneAndUpdate()
	}
	opts.SetReturnDocument(options.After)

	if update == nil {
		update = &UpdateData{}
	}
	if update.Set == nil {
		update.Set = map[string]interface{}{}
	}
	update.Set["updatedAt"] = s.now().UnixMilli()

	var result T
	if err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// UpdateById cập nhật document theo ID, trả về document sau cập nhật
func (s *BaseServiceMongoImpl[T]) UpdateById(ctx context.Context, id primitive.ObjectID, update *UpdateData) (T, error) {
	return s.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, nil)
}

// DeleteById xóa document theo ID
func (s *BaseServiceMongoImpl[T]) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DocumentExists kiểm tra xem một document có tồn tại không
func (s *BaseServiceMongoImpl[T]) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	count, err := s.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return count > 0, nil
}
