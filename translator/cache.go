package translator

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Cache 文件翻译缓存，按 文本+源语言+目标语言 的哈希存取
type Cache struct {
	dir   string
	mutex sync.RWMutex
}

// NewCache 创建缓存
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Get 获取缓存
func (c *Cache) Get(key string) (string, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return "", false
	}

	return string(data), true
}

// Set 设置缓存
func (c *Cache) Set(key, value string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return os.WriteFile(c.path(key), []byte(value), 0644)
}

func (c *Cache) path(key string) string {
	hash := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(hash[:])+".txt")
}

// CacheKey 生成缓存键
func CacheKey(text, sourceLang, targetLang string) string {
	data := map[string]string{
		"text":       text,
		"sourceLang": sourceLang,
		"targetLang": targetLang,
	}
	jsonData, _ := json.Marshal(data)
	return string(jsonData)
}
