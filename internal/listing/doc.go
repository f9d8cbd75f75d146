// Package listing retrieves category listing pages and extracts the ordered
// sequence of item ids they advertise, plus a provenance stamp for generated
// artifacts. Extraction is a thin scrape: a regex over the raw page for item
// href patterns and an HTML walk for the generator meta tag.
package listing
