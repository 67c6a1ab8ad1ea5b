// Package markdown holds the goldmark backed renderer policies used by airmd
// flavors: the configurable GoldmarkParser, the LiveBlockRenderer that
// executes air-live fenced blocks, chroma highlighting, bluemonday
// sanitising, and the filesystem document workflow (front matter, loader,
// service).
package markdown
