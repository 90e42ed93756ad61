package service

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Cache is a key to serialized-value store. Deleting absent keys is not an error.
type Cache interface {
	Has(key string) bool
	Get(key string) (string, bool)
	Set(key, value string) error
	Del(keys ...string) error
}

// CacheCodec stores typed values in a Cache. An entry that cannot be decoded
// or fails validation is deleted and reported as a miss.
type CacheCodec struct {
	cache    Cache
	validate *validator.Validate
}

func NewCacheCodec(cache Cache) *CacheCodec {
	return &CacheCodec{cache: cache, validate: validator.New()}
}

func (c *CacheCodec) Load(key string, dst interface{}) bool {
	raw, ok := c.cache.Get(key)
	if !ok {
		return false
	}
	err := json.UnmarshalFromString(raw, dst)
	if err == nil {
		err = c.check(dst)
	}
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("dropping unreadable cache entry")
		if err := c.cache.Del(key); err != nil {
			log.WithError(err).WithField("key", key).Error("delete cache entry")
		}
		return false
	}
	return true
}

func (c *CacheCodec) Store(key string, value interface{}) {
	raw, err := json.MarshalToString(value)
	if err == nil {
		err = c.cache.Set(key, raw)
	}
	if err != nil {
		log.WithError(err).WithField("key", key).Error("write cache entry")
	}
}

func (c *CacheCodec) check(value interface{}) error {
	v := reflect.Indirect(reflect.ValueOf(value))
	switch v.Kind() {
	case reflect.Struct:
		return c.validate.Struct(v.Interface())
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			if err := c.check(v.Index(i).Interface()); err != nil {
				return err
			}
		}
	}
	return nil
}
