package config

// UploadsConfig controls where cover images are stored.
type UploadsConfig struct {
	// BucketURL is a local directory or a gocloud blob URL (file://, mem://, s3://).
	BucketURL string
	MaxBytes  int64
}

func loadUploads() UploadsConfig {
	return UploadsConfig{
		BucketURL: envOrDefault(envUploadsBucket, defaultUploadsDir),
		MaxBytes:  int64EnvOrDefault(envUploadsMaxBytes, defaultUploadsMaxBytes),
	}
}
