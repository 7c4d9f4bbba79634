// Package notesdk provides the request/response types for the notekeep
// HTTP API and a small client for calling it.
//
// The types are shared with the server handlers so the wire format is
// defined in exactly one place. The client keeps the session cookie in a
// jar, mirroring how a browser holds it:
//
//	client, err := notesdk.NewClient("http://localhost:8080")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	user, err := client.SignUp(ctx, notesdk.SignUpRequest{
//		Name:     "Alice",
//		Email:    "alice@example.com",
//		Password: "correct horse battery staple",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	note, err := client.AddNote(ctx, notesdk.AddNoteRequest{
//		Title:   "Groceries",
//		Content: "milk, eggs",
//		Tags:    []string{"home"},
//	})
//
// Error responses come back as *APIError with the status code and the
// server's message:
//
//	var apiErr *notesdk.APIError
//	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
//		// email already registered
//	}
package notesdk
