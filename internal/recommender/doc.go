// Package recommender ranks attractions for a visitor.
//
// A Catalog holds the attractions together with the description embeddings
// computed once at build time. For every query the Scorer produces four
// components per attraction (location, interest, history and popularity),
// combines them with fixed weights and the Ranker returns a stable top-N
// slice that the formatter turns into a readable explanation.
//
// The package has no I/O of its own: embeddings come from an Embedder and
// catalogs are published to concurrent readers through a Store.
package recommender
