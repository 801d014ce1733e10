package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"

	"github.com/deptsearch/deptsearch-api/catalog"
	"github.com/deptsearch/deptsearch-api/services"
)

// Offline search over a local dataset file. No database, no network: the
// estimator runs with a fixed seed so repeated runs print identical output.
func main() {
	datasetPath := flag.String("dataset", "data/admissions.csv", "path to the admission CSV")
	targetYear := flag.Int("year", 2025, "admission year to filter on")
	limit := flag.Int("limit", 10, "number of results to print")
	flag.Parse()

	query := strings.Join(flag.Args(), " ")

	f, err := os.Open(*datasetPath)
	if err != nil {
		log.Fatalf("Failed to open dataset: %v", err)
	}
	defer f.Close()

	builder := catalog.NewBuilder(catalog.BuilderConfig{
		TargetYear: *targetYear,
		FilterYear: true,
	})
	cat, err := builder.Build(f)
	if err != nil {
		log.Fatalf("Failed to build catalog: %v", err)
	}

	store := catalog.NewStore(cat)
	estimator := services.NewEstimator(rand.NewSource(1))
	scorer := services.NewScorer(estimator, *targetYear)
	search := services.NewSearchService(store, scorer)

	result := search.Search(query)

	fmt.Printf("query=%q universities=%d matches=%d\n\n", query, len(cat.Order), result.EstimatedTotalCount)

	n := *limit
	if n > len(result.Departments) {
		n = len(result.Departments)
	}
	for i, dept := range result.Departments[:n] {
		fmt.Printf("%2d. %s %s [%s, %s]\n", i+1, dept.UniversityName, dept.DepartmentName, dept.Field, dept.Location)
	}
}
