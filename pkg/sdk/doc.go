// Package slotgate provides a Go client for the slotgate HTTP API, which
// filters retrieval candidates that are similar to a question but lack the
// attribute the question asks for.
//
//	client, _ := slotgate.New("http://localhost:8080", slotgate.WithAPIKey(key))
//	v, _ := client.Evaluate(ctx, slotgate.Query{
//	    TargetSlot:  "when",
//	    Constraints: map[string]string{"who": "CEO"},
//	}, slotgate.Document{
//	    ID:    "doc_001",
//	    Slots: map[string]*string{"who": slotgate.Value("CEO"), "when": slotgate.Value("June")},
//	})
//	if v.Accepted() { ... }
//
// Errors returned by the server are mapped back to the sentinel errors in
// this package; use errors.Is to check them.
package slotgate
