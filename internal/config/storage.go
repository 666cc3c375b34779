package config

type StorageConfig struct {
	Provider  string `yaml:"provider"` // local, s3
	LocalPath string `yaml:"local_path"`
	LocalURL  string `yaml:"local_url"`
	S3Region  string `yaml:"s3_region"`
	S3Bucket  string `yaml:"s3_bucket"`
}

func loadStorageConfig() *StorageConfig {
	return &StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "local"),
		LocalPath: getEnv("STORAGE_LOCAL_PATH", "./data/documents"),
		LocalURL:  getEnv("STORAGE_LOCAL_URL", "http://localhost:8080/documents"),
		S3Region:  getEnv("STORAGE_S3_REGION", "us-east-1"),
		S3Bucket:  getEnv("STORAGE_S3_BUCKET", ""),
	}
}
