// Package browse holds the stateful models behind the character browser.
//
// ListModel accumulates characters page by page and decides whether another
// page can be loaded from the pagination metadata the server returns.
// DetailModel owns a single character and lazily loads its episodes.
//
// Both models are safe for concurrent use. A call that arrives while the same
// operation is already in flight returns immediately without touching the
// network. Every state change is published to listeners registered with
// Subscribe as an immutable snapshot.
package browse
