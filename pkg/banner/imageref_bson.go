package banner

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// MarshalBSONValue encodes the ref as its string form, mirroring JSON, so
// persisted records look the same in every backend.
func (r ImageRef) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(r.String())
}

// UnmarshalBSONValue decodes the string form.
func (r *ImageRef) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var s string
	if err := bson.UnmarshalValue(t, data, &s); err != nil {
		return err
	}
	if s == "" {
		*r = ImageRef{}
		return nil
	}
	parsed, err := ParseImageRef(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
