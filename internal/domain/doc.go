// Package domain defines the core business entities of the memo API:
// memos, groups, and the hashtag extraction rules that derive a memo's
// tags from its text.
package domain
