package objectstore

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"mvcs-loader/core/loader"
	"mvcs-loader/core/storage"
	"mvcs-loader/core/utils"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// ErrBucketMissing is returned by Check when the bundle bucket does not exist.
var ErrBucketMissing = errors.New("bundle bucket does not exist")

// Registry is where the delegates put what they find.
type Registry interface {
	Register(c loader.Category, name, source string)
	MergeConfig(settings map[string]any)
}

// Delegates loads bundle directories from an object storage bucket. A
// directory path is read as the key prefix of its objects.
type Delegates struct {
	client storage.Client
	bucket string
	reg    Registry
	logger *zap.Logger
}

// New creates object storage delegates for one bucket.
func New(client storage.Client, bucket string, reg Registry, logger *zap.Logger) *Delegates {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Delegates{client: client, bucket: bucket, reg: reg, logger: logger}
}

// Check verifies the bucket is reachable.
func (d *Delegates) Check(ctx context.Context) error {
	ok, err := d.client.BucketExists(ctx, d.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", d.bucket, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrBucketMissing, d.bucket)
	}
	return nil
}

// LoaderSet returns one delegate per category.
func (d *Delegates) LoaderSet() loader.LoaderSet {
	return loader.LoaderSet{
		Policies: func(dir string) error {
			return d.registerPrefix(context.Background(), loader.CategoryPolicies, dir)
		},
		Config:      d.LoadConfig,
		Models:      d.registrar(loader.CategoryModels),
		Controllers: d.registrar(loader.CategoryControllers),
		Helpers:     d.registrar(loader.CategoryHelpers),
		Services:    d.registrar(loader.CategoryServices),
		Responses:   d.registrar(loader.CategoryResponses),
	}
}

// LoadConfig fetches every config object under dir and merges it into the
// registry's config store.
func (d *Delegates) LoadConfig(dir string) error {
	ctx := context.Background()
	keys, err := d.list(ctx, dir)
	if err != nil {
		return err
	}
	for _, key := range keys {
		ext := strings.TrimPrefix(strings.ToLower(path.Ext(key)), ".")
		switch ext {
		case "yaml", "yml", "json", "toml":
		default:
			continue
		}
		if err := d.mergeObject(ctx, key, ext); err != nil {
			return err
		}
	}
	return nil
}

func (d *Delegates) mergeObject(ctx context.Context, key, ext string) error {
	obj, err := d.client.GetObject(ctx, d.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("get config %s: %w", key, err)
	}
	defer obj.Close()

	v := viper.New()
	v.SetConfigType(ext)
	if err := v.ReadConfig(obj); err != nil {
		return fmt.Errorf("read config %s: %w", key, err)
	}
	d.reg.MergeConfig(v.AllSettings())
	d.logger.Debug("Config object merged", zap.String("key", key))
	return nil
}

func (d *Delegates) registrar(c loader.Category) loader.AsyncLoader {
	return func(ctx context.Context, dir string) error {
		return d.registerPrefix(ctx, c, dir)
	}
}

func (d *Delegates) registerPrefix(ctx context.Context, c loader.Category, dir string) error {
	keys, err := d.list(ctx, dir)
	if err != nil {
		return err
	}
	prefix := keyPrefix(dir)
	for _, key := range keys {
		d.reg.Register(c, utils.ComponentName(strings.TrimPrefix(key, prefix)), key)
	}
	d.logger.Debug("Components registered",
		zap.String("category", string(c)),
		zap.String("prefix", prefix),
		zap.Int("count", len(keys)),
	)
	return nil
}

// list returns the visible object keys under dir. Folder markers are skipped.
func (d *Delegates) list(ctx context.Context, dir string) ([]string, error) {
	prefix := keyPrefix(dir)
	var keys []string
	for obj := range d.client.ListObjects(ctx, d.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list %s: %w", prefix, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		if utils.IsHidden(strings.TrimPrefix(obj.Key, prefix)) {
			continue
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

// keyPrefix maps a directory path to an object key prefix.
func keyPrefix(dir string) string {
	p := strings.Trim(path.Clean("/"+dir), "/")
	if p == "" {
		return ""
	}
	return p + "/"
}
