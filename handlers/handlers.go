package handlers

import (
	"doc-translator-web/config"
	"doc-translator-web/extractor"
	"doc-translator-web/jobs"
	"doc-translator-web/translator"
)

// 包级依赖，由 main 在启动时注入
var (
	cfg     *config.Config
	store   *jobs.Store
	extr    *extractor.Extractor
	trCache *translator.Cache
)

// Init 注入各处理器共享的依赖
func Init(c *config.Config, s *jobs.Store, e *extractor.Extractor, cache *translator.Cache) {
	cfg = c
	store = s
	extr = e
	trCache = cache
}
