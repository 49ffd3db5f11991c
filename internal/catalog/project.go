package catalog

// DefaultStorefrontURL is the public product page prefix.
const DefaultStorefrontURL = "https://demo.nimara.store/products/"

// SearchResult is the generic search envelope for one product.
type SearchResult struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	URL   string  `json:"url"`
	Image *string `json:"image,omitempty"`
}

// SearchResults wraps search hits the way generic search callers expect.
type SearchResults struct {
	Results []SearchResult `json:"results"`
}

// FetchResult is the generic fetch envelope for one product.
type FetchResult struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Text     string         `json:"text"`
	URL      string         `json:"url"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ProductList is the structured output of the products tool.
type ProductList struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// ProductURL joins the storefront base and slug. Channel plays no part.
func ProductURL(base, slug string) string {
	return base + slug
}

// Projector maps products into the search and fetch envelopes.
type Projector struct {
	BaseURL string
}

func (p Projector) Search(product Product) SearchResult {
	r := SearchResult{
		ID:    product.ID,
		Title: product.Name,
		URL:   ProductURL(p.BaseURL, product.Slug),
	}
	if product.Thumbnail != nil {
		url := product.Thumbnail.URL
		r.Image = &url
	}
	return r
}

func (p Projector) SearchAll(products []Product) SearchResults {
	results := make([]SearchResult, 0, len(products))
	for _, product := range products {
		results = append(results, p.Search(product))
	}
	return SearchResults{Results: results}
}

func (p Projector) Fetch(product Product) (FetchResult, error) {
	metadata, err := product.AsMap()
	if err != nil {
		return FetchResult{}, err
	}
	return FetchResult{
		ID:       product.ID,
		Title:    product.Name,
		Text:     product.Description,
		URL:      ProductURL(p.BaseURL, product.Slug),
		Metadata: metadata,
	}, nil
}
