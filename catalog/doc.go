// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog holds the reference table of research institutes (INCTs).

# Table Format

The source is a CSV file with one row per institute:

	nome_inct,area,coordenador,n_pesquisadores,n_feminino,n_masculino,Identificador,identificador_area,path_gexf_html

The first six columns are required. Blank counts read as zero. The sum of
n_feminino and n_masculino may be lower than n_pesquisadores because some
curricula do not report gender; this is not validated.

# Loading

A Store reads its path once and serves the same immutable *Catalog to
every caller:

	store := catalog.NewStore("bases/select_incts_areas_coord_sexo.csv")
	cat, err := store.Load()

Reload re-reads the file and atomically replaces the snapshot. It is the
only way the served data changes.

# Lookups

Indexes by institute and by area are built at load time:

	cat.UniqueInstitutes() // sorted, deduplicated
	cat.UniqueAreas()
	cat.ByInstitute("INCT-A")
	cat.ByArea("Physics")

Institute names are expected to be unique but this is not enforced. Every
matching row is returned and DuplicateInstitutes reports the offenders.
*/
package catalog
