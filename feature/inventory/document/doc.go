// Package document encodes inventory items into index documents.
//
// Encode is pure: it touches no network or shared state. The document id is
// always the item id, which makes every write to the index an overwrite of
// the same document rather than a duplicate.
package document
