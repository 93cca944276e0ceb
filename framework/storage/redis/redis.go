// +build redis

package redis

import (
	"strings"

	"github.com/go-redis/redis"
	"github.com/pkg/errors"

	"github.com/retro-framework/go-fingerprint/framework/object"
	"github.com/retro-framework/go-fingerprint/framework/packing"
	"github.com/retro-framework/go-fingerprint/framework/ref"
	"github.com/retro-framework/go-fingerprint/framework/storage"
)

const (
	objKeyPrefix = "fingerprint:obj:"
	refsKey      = "fingerprint:refs"
)

// writeRef sets the field only when it differs, returning 1 when it did.
var writeRef = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], ARGV[1])
if cur == ARGV[2] then return 0 end
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
return 1
`)

func connect(addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping().Err(); err != nil {
		return nil, errors.Wrapf(storage.ErrBackendUnavailable, "redis %s: %s", addr, err)
	}
	return client, nil
}

// NewObjectStore connects to the redis server at addr.
func NewObjectStore(addr string) (object.ListableDB, error) {
	client, err := connect(addr)
	if err != nil {
		return nil, err
	}
	return &objectStore{client}, nil
}

// NewRefStore connects to the redis server at addr.
func NewRefStore(addr string) (ref.ListableDB, error) {
	client, err := connect(addr)
	if err != nil {
		return nil, err
	}
	return &refStore{client}, nil
}

type objectStore struct {
	client *redis.Client
}

func (s *objectStore) WritePacked(p packing.HashedObject) (int, error) {
	b := storage.Deflate(p.Contents())
	set, err := s.client.SetNX(objKeyPrefix+p.Fingerprint().String(), b, 0).Result()
	if err != nil {
		return 0, Error{"write-packed", err}
	}
	if !set {
		return 0, nil
	}
	return len(b), nil
}

func (s *objectStore) RetrievePacked(str string) (packing.HashedObject, error) {
	fp, err := packing.ParseFingerprint(str)
	if err != nil {
		return nil, err
	}
	b, err := s.client.Get(objKeyPrefix + fp.String()).Bytes()
	if err == redis.Nil {
		return nil, errors.Wrap(storage.ErrNoSuchObject, str)
	}
	if err != nil {
		return nil, Error{"retrieve-packed", err}
	}
	orig, err := storage.Inflate(b)
	if err != nil {
		return nil, err
	}
	return packing.NewPackedObject(fp, orig), nil
}

func (s *objectStore) Ls() ([]packing.Fingerprint, error) {
	var (
		res    []packing.Fingerprint
		cursor uint64
	)
	for {
		keys, next, err := s.client.Scan(cursor, objKeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, Error{"ls", err}
		}
		for _, k := range keys {
			fp, err := packing.ParseFingerprint(strings.TrimPrefix(k, objKeyPrefix))
			if err != nil {
				continue
			}
			res = append(res, fp)
		}
		if next == 0 {
			return res, nil
		}
		cursor = next
	}
}

type refStore struct {
	client *redis.Client
}

func (s *refStore) Write(name string, fp packing.Fingerprint) (bool, error) {
	if err := ref.ValidName(name); err != nil {
		return false, err
	}
	res, err := writeRef.Run(s.client, []string{refsKey}, name, fp.String()).Result()
	if err != nil {
		return false, Error{"write-ref", err}
	}
	n, _ := res.(int64)
	return n == 1, nil
}

func (s *refStore) Retrieve(name string) (packing.Fingerprint, error) {
	str, err := s.client.HGet(refsKey, name).Result()
	if err == redis.Nil {
		return packing.Fingerprint{}, errors.Wrap(storage.ErrUnknownRef, name)
	}
	if err != nil {
		return packing.Fingerprint{}, Error{"retrieve-ref", err}
	}
	return packing.ParseFingerprint(str)
}

func (s *refStore) Ls() (map[string]packing.Fingerprint, error) {
	all, err := s.client.HGetAll(refsKey).Result()
	if err != nil {
		return nil, Error{"ls-refs", err}
	}
	res := make(map[string]packing.Fingerprint, len(all))
	for name, str := range all {
		fp, err := packing.ParseFingerprint(str)
		if err != nil {
			return nil, Error{"ls-refs", err}
		}
		res[name] = fp
	}
	return res, nil
}
