/* Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package s3cache

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/google/go-cmp/cmp"
	"github.com/gregjones/httpcache/test"
)

// fakeS3 keeps objects in memory and answers like S3 does for the calls
// the cache makes.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput,
	_ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {

	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchKey",
			Message: "The specified key does not exist."}
	}
	return &s3.GetObjectOutput{
		Body: io.NopCloser(bytes.NewReader(data)),
	}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput,
	_ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {

	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput,
	_ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {

	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) HeadBucket(_ context.Context, _ *s3.HeadBucketInput,
	_ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {

	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input,
	_ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {

	f.mu.Lock()
	defer f.mu.Unlock()
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	for _, k := range keys {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	return out, nil
}

func newFakeCache(t *testing.T, gz bool) (*Cache, *fakeS3) {
	t.Helper()
	fake := newFakeS3()
	cache := New(context.Background(), "test-bucket", gz, true)
	cache.Client = fake
	if err := cache.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return cache, fake
}

func TestS3CacheFake(t *testing.T) {
	for _, gz := range []bool{false, true} {
		t.Run(fmt.Sprintf("gzip=%v", gz), func(t *testing.T) {
			cache, _ := newFakeCache(t, gz)
			test.Cache(t, cache)
		})
	}
}

func TestS3CacheObjectKeys(t *testing.T) {
	cache, fake := newFakeCache(t, true)

	payload := []byte(`{"name":"spring"}`)
	if err := cache.Put("tournament/spring", payload); err != nil {
		t.Fatalf("Put: %v", err)
	}
	cache.Set("tournament/fall", []byte(`{}`))
	cache.Set("other/thing", []byte(`{}`))

	if _, ok := fake.objects["pptd/tournament/spring.gz"]; !ok {
		t.Errorf("unexpected object keys: %v", fake.objects)
	}
	if bytes.Equal(fake.objects["pptd/tournament/spring.gz"], payload) {
		t.Error("object was stored uncompressed")
	}

	got, ok := cache.Get("tournament/spring")
	if !ok || !bytes.Equal(got, payload) {
		t.Errorf("Get = %q, %v", got, ok)
	}

	keys, err := cache.Keys("tournament/")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	want := []string{"tournament/fall", "tournament/spring"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(&smithy.GenericAPIError{Code: "NoSuchKey"}) {
		t.Error("NoSuchKey should be not found")
	}
	if IsNotFound(&smithy.GenericAPIError{Code: "AccessDenied"}) {
		t.Error("AccessDenied should not be not found")
	}
	if IsNotFound(fmt.Errorf("plain")) {
		t.Error("plain error should not be not found")
	}
}

func TestS3Cache(t *testing.T) {
	bucket := os.Getenv("PPTD_TEST_BUCKET")
	if bucket == "" {
		t.Skip("Skipping test because PPTD_TEST_BUCKET is not set")
	}

	for _, gz := range []bool{false, true} {
		cache := New(context.Background(), bucket, gz, true)
		cache.Prefix = "pptd-test"
		if err := cache.Init(); err != nil {
			t.Skip(fmt.Sprintf("Skipping test due to lack of access to %v: %v",
				bucket, err))
		}
		test.Cache(t, cache)
	}
}
