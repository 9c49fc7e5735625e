// Package covid provides the Snapshot record scraped from the COVID-19 dashboard.
//
// A Snapshot is built once per fetch cycle, held in memory for one render pass and
// discarded. Every field always carries a value: a field the page did not provide
// holds its documented default instead of being left empty or failing the fetch.
package covid
