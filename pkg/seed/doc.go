// Package seed loads the document used to populate a new store.
//
// A seed is a mapping with a users and a groups sequence. It can be read
// from a local JSON or YAML file or fetched over HTTP:
//
//	src, err := seed.New("data/seed.json")
//	doc, err := src.Load(ctx)
//	err = connector.Initialize(ctx, doc)
//
// WaitForFile blocks until a seed file shows up, for deployments where the
// seed is provisioned after ums starts.
package seed
