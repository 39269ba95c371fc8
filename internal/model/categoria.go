package model

// Categoria is the tagged classification assigned to every ingested activity
// and carried on ledger entries. A single closed set replaces the free-form
// strings the dashboard used to scatter across routes.
type Categoria string

const (
	CategoriaSeedsIn          Categoria = "seeds_in"
	CategoriaSeedsOut         Categoria = "seeds_out"
	CategoriaAnimalsIn        Categoria = "animals_in"
	CategoriaAnimalsOut       Categoria = "animals_out"
	CategoriaFeedIn           Categoria = "feed_in"
	CategoriaFeedOut          Categoria = "feed_out"
	CategoriaManufacturedIn   Categoria = "manufactured_in"
	CategoriaPlantsIn         Categoria = "plants_in"
	CategoriaAnimalProductsIn Categoria = "animal_products_in"
	CategoriaFinancial        Categoria = "financial"
	CategoriaWorkerPayment    Categoria = "worker_payment"
	CategoriaExcluded         Categoria = "excluded"
	// CategoriaOutros is the explicit fallback — absence of a keyword match
	// degrades here rather than failing.
	CategoriaOutros Categoria = "outros"
)
