package recommendation

import (
	"sort"

	"github.com/google/uuid"

	"github.com/ngkart/backend/internal/domain/shared"
)

const (
	// DefaultClusters is the number of name clusters trained.
	DefaultClusters = 10
	// DefaultMaxIterations caps the k-means refinement loop.
	DefaultMaxIterations = 100
	// topTermsPerCluster is how many descriptive terms label a cluster.
	topTermsPerCluster = 10
)

// Cluster is one trained group of products with its descriptive terms.
type Cluster struct {
	Terms    []string    `json:"terms"`
	Products []uuid.UUID `json:"products"`
}

// Model is a trained recommendation model over product names. It is a
// read-only artifact: training consumes a name feed and never touches
// order or inventory state.
type Model struct {
	Clusters []Cluster `json:"clusters"`

	names map[uuid.UUID][]string
}

// Train builds a model by TF-IDF-vectorizing the product names and
// clustering them with seeded k-means. Identical inputs and seed always
// produce the identical model.
func Train(names map[uuid.UUID]string, k, maxIterations int, seed int64) (*Model, error) {
	if len(names) == 0 {
		return nil, shared.NewDomainError("NO_PRODUCTS", "No product names to train on")
	}
	if k <= 0 {
		k = DefaultClusters
	}
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	// stable iteration order so training is reproducible
	ids := make([]uuid.UUID, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	documents := make([]string, len(ids))
	for i, id := range ids {
		documents[i] = names[id]
	}

	vectorizer := NewVectorizer(documents)
	vectors := vectorizer.TransformAll(documents)
	assignments, centroids := KMeans(vectors, k, maxIterations, seed)

	model := &Model{
		Clusters: make([]Cluster, len(centroids)),
		names:    make(map[uuid.UUID][]string, len(names)),
	}
	for i, centroid := range centroids {
		model.Clusters[i].Terms = vectorizer.TopTerms(centroid, topTermsPerCluster)
	}
	for i, cluster := range assignments {
		model.Clusters[cluster].Products = append(model.Clusters[cluster].Products, ids[i])
	}
	for id, name := range names {
		model.names[id] = Tokenize(name)
	}
	return model, nil
}

// Rehydrate restores the name index after a model is loaded from a
// serialized form (only Clusters survive JSON round trips).
func (m *Model) Rehydrate(names map[uuid.UUID]string) {
	m.names = make(map[uuid.UUID][]string, len(names))
	for id, name := range names {
		m.names[id] = Tokenize(name)
	}
}

// Recommend maps the query to the cluster whose terms mention it, then
// ranks that cluster's products by how many cluster terms their names
// share. An unmatched query returns an empty list.
func (m *Model) Recommend(query string, limit int) []uuid.UUID {
	queryTerms := Tokenize(query)
	if len(queryTerms) == 0 {
		return nil
	}

	cluster := m.matchCluster(queryTerms)
	if cluster == nil {
		return nil
	}

	clusterTerms := make(map[string]struct{}, len(cluster.Terms))
	for _, term := range cluster.Terms {
		clusterTerms[term] = struct{}{}
	}

	type scored struct {
		id    uuid.UUID
		score int
	}
	ranked := make([]scored, 0, len(cluster.Products))
	for _, id := range cluster.Products {
		var score int
		for _, word := range m.names[id] {
			if _, ok := clusterTerms[word]; ok {
				score++
			}
		}
		if score > 0 {
			ranked = append(ranked, scored{id: id, score: score})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if limit <= 0 || limit > len(ranked) {
		limit = len(ranked)
	}
	result := make([]uuid.UUID, limit)
	for i := 0; i < limit; i++ {
		result[i] = ranked[i].id
	}
	return result
}

// matchCluster returns the cluster sharing the most terms with the
// query, or nil when no cluster mentions any query term.
func (m *Model) matchCluster(queryTerms []string) *Cluster {
	var best *Cluster
	bestOverlap := 0
	for i := range m.Clusters {
		overlap := 0
		for _, term := range m.Clusters[i].Terms {
			for _, queryTerm := range queryTerms {
				if term == queryTerm {
					overlap++
				}
			}
		}
		if overlap > bestOverlap {
			bestOverlap = overlap
			best = &m.Clusters[i]
		}
	}
	return best
}
