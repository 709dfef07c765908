/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 *
 * Package s3cache provides an implementation of httpcache.Cache that stores and
 * retrieves data using Amazon S3. It is based on the original
 * github.com/sourcegraph/s3cache but updated to use aws-sdk-go-v2, and keeps
 * object keys readable so saved tournaments can be listed and inspected in
 * the bucket.
 */
package s3cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const DefaultPrefix = "pptd"

// API is the subset of the S3 client the cache uses.
type API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput,
		optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput,
		optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput,
		optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput,
		optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input,
		optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Cache objects store and retrieve data using Amazon S3.
type Cache struct {
	// Client is the s3 client the cache uses when interacting with S3. Init
	// fills it in from the default AWS configuration when nil.
	Client API

	// Prefix is prepended to every object key.
	Prefix string

	bucketName string

	// gzip indicates whether cache entries should be gzipped in Set and
	// gunzipped in Get. If true, object keys have the suffix ".gz".
	gzip bool

	logErrors bool

	// The context to specify when initiating s3 requests
	ctx context.Context
}

func (c *Cache) Get(key string) ([]byte, bool) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.objectKey(key)),
	}

	resp, err := c.Client.GetObject(c.ctx, input)
	if err != nil {
		if c.logErrors && !IsNotFound(err) {
			log.Printf("s3cache.get: failed to get object %v/%v: %v",
				*input.Bucket, *input.Key, err)
		}
		return nil, false
	}
	defer resp.Body.Close()

	var rdr io.Reader = resp.Body
	if c.gzip {
		gr, err := gzip.NewReader(resp.Body)
		if err != nil {
			if c.logErrors {
				log.Printf("s3cache.get: failed to open compressed object %v/%v: %v",
					*input.Bucket, *input.Key, err)
			}
			return nil, false
		}
		defer gr.Close()
		rdr = gr
	}
	data, err := io.ReadAll(rdr)
	if err != nil && c.logErrors {
		log.Printf("s3cache.get: failed to read object %v/%v: %v",
			*input.Bucket, *input.Key, err)
	}

	return data, err == nil
}

// Set stores the provided data in the cache under the given key.
func (c *Cache) Set(key string, data []byte) {
	if err := c.Put(key, data); err != nil && c.logErrors {
		log.Printf("s3cache.set: %v", err)
	}
}

// Put is Set with the error reported to the caller.
func (c *Cache) Put(key string, data []byte) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(c.objectKey(key)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	}

	if c.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			return fmt.Errorf("failed to gzip data for %v/%v: %w",
				*input.Bucket, *input.Key, err)
		}
		if err := gw.Close(); err != nil {
			return fmt.Errorf("failed to close gzip writer for %v/%v: %w",
				*input.Bucket, *input.Key, err)
		}
		input.Body = bytes.NewReader(buf.Bytes())
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := c.Client.PutObject(c.ctx, input); err != nil {
		return fmt.Errorf("put failed for %v/%v: %w", *input.Bucket,
			*input.Key, err)
	}

	return nil
}

func (c *Cache) Delete(key string) {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.objectKey(key)),
	}

	_, err := c.Client.DeleteObject(c.ctx, input)
	if err != nil && c.logErrors {
		log.Printf("s3cache.delete: delete failed for %v/%v: %v",
			*input.Bucket, *input.Key, err)
	}
}

// Keys returns every key stored under keyPrefix.
func (c *Cache) Keys(keyPrefix string) ([]string, error) {
	root := c.objectPrefix()
	p := s3.NewListObjectsV2Paginator(c.Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucketName),
		Prefix: aws.String(root + keyPrefix),
	})

	var keys []string
	for p.HasMorePages() {
		page, err := p.NextPage(c.ctx)
		if err != nil {
			return nil, fmt.Errorf("s3cache.keys: list failed for %v: %w",
				c.bucketName, err)
		}
		for _, obj := range page.Contents {
			k := strings.TrimPrefix(aws.ToString(obj.Key), root)
			if c.gzip {
				if !strings.HasSuffix(k, ".gz") {
					continue
				}
				k = strings.TrimSuffix(k, ".gz")
			}
			keys = append(keys, k)
		}
	}

	return keys, nil
}

func (c *Cache) objectPrefix() string {
	if c.Prefix == "" {
		return ""
	}
	return path.Clean(c.Prefix) + "/"
}

func (c *Cache) objectKey(key string) string {
	objKey := c.objectPrefix() + key
	if c.gzip {
		objKey += ".gz"
	}

	return objKey
}

// IsNotFound reports whether err is S3's answer for a missing object.
func IsNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "NoSuchKey", "NotFound":
		return true
	}
	return false
}

// New returns a new Cache with underlying storage in the specified Amazon S3
// bucket. Additionally, specify whether objects persisted in the cache should
// be compressed with gzip or not. Callers should take care to invoke Init() on
// the returned Cache object before use
func New(ctxIn context.Context, bucketNameIn string, gzipIn bool,
	logErrorsIn bool) *Cache {

	return &Cache{
		ctx:        ctxIn,
		bucketName: bucketNameIn,
		gzip:       gzipIn,
		logErrors:  logErrorsIn,
		Prefix:     DefaultPrefix,
	}
}

// Init loads the default AWS configuration when no Client was supplied and
// verifies the bucket is reachable. The default configuration sources are:
// * Environment Variables (e.g. AWS_ACCESS_KEY_ID and AWS_SECRET_KEY)
// * Shared Configuration and Shared Credentials files.
func (c *Cache) Init() error {
	if c.Client == nil {
		cfg, err := config.LoadDefaultConfig(c.ctx)
		if err != nil {
			return fmt.Errorf("s3cache.init: failed to load AWS config: %w", err)
		}
		c.Client = s3.NewFromConfig(cfg)
	}

	if _, err := c.Client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucketName),
	}); err != nil {
		return fmt.Errorf("s3cache.init: head bucket failed for %s: %w", c.bucketName, err)
	}

	return nil
}
