// Package stylematch provides an in-process fashion recommender: it fits a
// TF-IDF model over a product catalog and ranks items against free-text
// queries by cosine similarity.
//
// # From a catalog file
//
//	client, _ := stylematch.New(ctx, stylematch.WithCSVFile("myntra.csv"))
//	recs, _ := client.Recommend(ctx, "red cotton summer dress", 5)
//	for _, r := range recs {
//	    fmt.Println(r.Name, r.Image, r.Score)
//	}
//
// # From records in memory
//
//	client, _ := stylematch.New(ctx, stylematch.WithRecords([]stylematch.Record{
//	    {ID: "1", Name: "Red Dress", Image: "1.jpg", Color: "Red"},
//	}))
//
// Results can be cached in Valkey or Redis with WithValkey or WithRedis.
// Reload rebuilds the model from the source; queries keep being served by
// the previous model until the new one is published.
package stylematch
