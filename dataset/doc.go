// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package dataset loads the pre-aggregated tables and pre-rendered HTML
fragments produced by the offline pipeline.

# Manifest

A Manifest names every source. DefaultManifest matches the pipeline's
output layout (bases/*.csv, gexf_html/, sankey_inct_palavra_tratada/,
sankey_inct_palavra_tratada_area/). A YAML file can override any entry:

	catalog: bases/select_incts_areas_coord_sexo.csv
	wordcloud_inct: exports/words.csv
	graph_dir: graphs

Relative paths are joined to the data directory by Resolve.

# Repository

Repository.Load reads the catalog (required) and the supplementary tables
(optional; a missing or malformed table loads empty and is logged).
Reload re-reads everything, swaps the snapshots and clears the fragment
cache. There is no other invalidation.

Fragments are looked up by catalog fields:

  - GraphFragment: <graph_dir>/<stem of path_gexf_html>.html
  - SankeyInstitute: <sankey_inct_dir>/sankey_inct_<Identificador>.html
  - SankeyArea: <sankey_area_dir>/sankey_inct_<identificador_area>.html

# Watching

Watcher reloads the repository when files change under the manifest
directories, debouncing bursts of events into a single reload.
*/
package dataset
