package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chamberhub/bizportal"
	"github.com/chamberhub/bizportal/application/service"
	"github.com/chamberhub/bizportal/domain/catalog"
	"github.com/chamberhub/bizportal/domain/locale"
	"github.com/chamberhub/bizportal/infrastructure/api/middleware"
	"github.com/chamberhub/bizportal/infrastructure/api/v1/dto"
)

// MemberRouter serves the member-only hubs and the member application view.
type MemberRouter struct {
	client *bizportal.Client
	logger *slog.Logger
}

// NewMemberRouter creates a new MemberRouter.
func NewMemberRouter(client *bizportal.Client) *MemberRouter {
	return &MemberRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for member endpoints.
func (r *MemberRouter) Routes() chi.Router {
	router := chi.NewRouter()
	content := r.client.Catalog

	router.Get("/applications/{id}", r.Application)

	mountHub(router, content.Deals, dealToDTO, r.logger)
	mountHub(router, content.Datasets, datasetToDTO, r.logger)
	mountHub(router, content.Reports, reportToDTO, r.logger)
	mountHub(router, content.Companies, companyToDTO, r.logger)
	mountHub(router, content.Suppliers, supplierToDTO, r.logger)
	mountHub(router, content.Tenders, tenderToDTO, r.logger)

	return router
}

// Application handles GET /api/member/applications/{id}.
func (r *MemberRouter) Application(w http.ResponseWriter, req *http.Request) {
	detail, err := r.client.Applications.MemberView(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, detailToDTO(detail, requestLocale(req)))
}

// mountHub registers GET /{kind} and GET /{kind}/{id} for one hub.
func mountHub[T catalog.Entry, D any](router chi.Router, hub service.Hub[T], toDTO func(T, locale.Locale) D, logger *slog.Logger) {
	kind := string(hub.Kind())

	router.Get("/"+kind, func(w http.ResponseWriter, req *http.Request) {
		q, err := catalogQuery(req)
		if err != nil {
			middleware.WriteError(w, req, err, logger)
			return
		}
		loc := requestLocale(req)
		page := hub.List(q)

		items := make([]D, len(page.Items))
		for i, item := range page.Items {
			items[i] = toDTO(item, loc)
		}
		facets := hub.Facets()

		middleware.WriteJSON(w, http.StatusOK, dto.HubListResponse[D]{
			LocaleInfo: localeInfo(loc),
			Success:    true,
			Kind:       kind,
			Filters: dto.CatalogFilters{
				Category:     q.Category,
				Sector:       q.Sector,
				Query:        q.Search,
				Featured:     q.Featured,
				GoldenVendor: q.GoldenVendor,
				Open:         q.OpenOnly,
				Sort:         string(q.Sort),
			},
			Facets: dto.Facets{
				Categories: nonNil(facets.Categories),
				Sectors:    nonNil(facets.Sectors),
			},
			Pagination: pagination(page.Page, page.PageSize, int64(page.Total), page.TotalPages),
			Items:      items,
		})
	})

	router.Get("/"+kind+"/{id}", func(w http.ResponseWriter, req *http.Request) {
		item, err := hub.Get(chi.URLParam(req, "id"))
		if err != nil {
			middleware.WriteError(w, req, err, logger)
			return
		}
		loc := requestLocale(req)
		middleware.WriteJSON(w, http.StatusOK, dto.HubItemResponse[D]{
			LocaleInfo: localeInfo(loc),
			Success:    true,
			Kind:       kind,
			Item:       toDTO(item, loc),
		})
	})
}

// catalogQuery reads hub filters from the query string.
func catalogQuery(req *http.Request) (catalog.Query, error) {
	query := req.URL.Query()
	sort, err := catalog.ParseSort(query.Get("sort"))
	if err != nil {
		return catalog.Query{}, err
	}
	return catalog.Query{
		Category:     query.Get("category"),
		Sector:       query.Get("sector"),
		Search:       query.Get("q"),
		Featured:     queryBool(req, "featured"),
		GoldenVendor: queryBool(req, "goldenVendor") || queryBool(req, "golden_vendor"),
		OpenOnly:     queryBool(req, "open"),
		Sort:         sort,
		Page:         queryInt(req, "page"),
		PageSize:     queryInt(req, "pageSize", "page_size"),
	}.Normalized(), nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
