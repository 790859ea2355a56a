// Package matchmaker provides an embedded Go client for the deal/buyer
// matchmaking engine backed by Redis with the search module.
//
// The client wires the full pipeline in-process: record storage, embedding
// generation, vector search and deterministic criteria scoring. It talks to
// Redis directly, no API server required.
//
//	client, _ := matchmaker.New(ctx,
//	    matchmaker.WithRedis("localhost:6379", ""),
//	    matchmaker.WithOpenAI(os.Getenv("OPENAI_API_KEY")),
//	)
//	defer client.Close()
//
//	_ = client.Deals().Upsert(ctx, matchmaker.Deal{
//	    ID: "deal-1", Title: "Acme Logistics", Stage: "qualified", Amount: 45_000_000,
//	})
//	_ = client.Deals().Embed(ctx, "deal-1")
//	matches, _ := client.Deals().MatchBuyers(ctx, "deal-1", matchmaker.Scored())
package matchmaker
