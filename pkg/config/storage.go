package config

type StorageMode string

const (
	StorageLocal StorageMode = "local"
	StorageS3    StorageMode = "s3"
)

type StorageConfig struct {
	Mode      StorageMode
	UploadDir string
	AWSRegion string
	AWSBucket string
	S3Prefix  string
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Mode:      StorageMode(getEnv("STORAGE_MODE", string(StorageLocal))),
		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),
		AWSBucket: getEnv("AWS_BUCKET", "hrms-uploads"),
		S3Prefix:  getEnv("S3_PREFIX", ""),
	}
}
