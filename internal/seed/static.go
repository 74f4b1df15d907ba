// ABOUTME: Static fallback data when OpenAI API key is not available.
// ABOUTME: Provides a realistic-looking fixed set of shop demo entities.

package seed

// generateStatic creates static fallback data.
func generateStatic(numPosts, numTerms, numUsers int) *Data {
	return &Data{
		Posts: take(staticPosts, numPosts),
		Terms: take(staticTerms, numTerms),
		Users: take(staticUsers, numUsers),
	}
}

// take cycles through templates until count entries are collected.
func take[T any](templates []T, count int) []T {
	if count <= 0 {
		return nil
	}
	out := make([]T, count)
	for i := range out {
		out[i] = templates[i%len(templates)]
	}
	return out
}

var staticPosts = []PostData{
	{Title: "About Us", PostType: "page"},
	{Title: "Contact", PostType: "page"},
	{Title: "Shipping & Returns", PostType: "page"},
	{Title: "Spring Collection Launch", PostType: "post"},
	{Title: "How to Care for Cast Iron", PostType: "post"},
	{Title: "Behind the Scenes: Our Workshop", PostType: "post"},
	{Title: "Gift Guide for Makers", PostType: "post"},
	{Title: "Holiday Shipping Deadlines", PostType: "post"},
}

var staticTerms = []TermData{
	{Name: "Kitchen", Taxonomy: "category"},
	{Name: "Workshop", Taxonomy: "category"},
	{Name: "Outdoor", Taxonomy: "category"},
	{Name: "handmade", Taxonomy: "tag"},
	{Name: "bestseller", Taxonomy: "tag"},
	{Name: "new-arrival", Taxonomy: "tag"},
}

var staticUsers = []UserData{
	{DisplayName: "Alice Chen", Role: "editor"},
	{DisplayName: "Bob Martinez", Role: "author"},
	{DisplayName: "Sarah Johnson", Role: "editor"},
	{DisplayName: "Priya Patel", Role: "author"},
	{DisplayName: "Tom Okafor", Role: "author"},
}
