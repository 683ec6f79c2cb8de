package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/civicradar/issueradar/internal/issue"
)

// FirestoreSource reads the issues collection from Cloud Firestore,
// where the reporting frontend writes complaints.
type FirestoreSource struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreSource connects to Firestore. credentialsFile may be empty
// to use application default credentials.
func NewFirestoreSource(ctx context.Context, projectID, collection, credentialsFile string) (*FirestoreSource, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to firestore: %w", err)
	}

	return &FirestoreSource{client: client, collection: collection}, nil
}

// ListIssues streams every document in the collection. Documents keep
// Firestore's iteration order, which fixes corpus positions for the
// lifetime of a snapshot.
func (s *FirestoreSource) ListIssues(ctx context.Context) ([]issue.Document, error) {
	iter := s.client.Collection(s.collection).Documents(ctx)
	defer iter.Stop()

	var docs []issue.Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading issues collection: %w", err)
		}
		docs = append(docs, issue.DocumentFromMap(snap.Ref.ID, snap.Data()))
	}

	return docs, nil
}

// Close releases the underlying Firestore client.
func (s *FirestoreSource) Close() error {
	return s.client.Close()
}
