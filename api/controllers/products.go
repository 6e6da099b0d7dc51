package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/TalhaZaheer1/SmartBridge-Backend/api/responses"
	productsvc "github.com/TalhaZaheer1/SmartBridge-Backend/internal/products"
	pkgerrors "github.com/TalhaZaheer1/SmartBridge-Backend/pkg/errors"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/logger"
)

const productUploadsSubdir = "products"

func splitStoreLevels(raw string) []string {
	var levels []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			levels = append(levels, trimmed)
		}
	}
	return levels
}

// CreateProduct accepts a multipart form with the listing fields and an
// optional image file.
func CreateProduct(svc productsvc.Service, uploads fileStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		adminID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := r.ParseMultipartForm(multipartMemoryBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		title := strings.TrimSpace(r.FormValue("title"))
		category := strings.TrimSpace(r.FormValue("category"))
		if title == "" || category == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "title and category are required"))
			return
		}

		price, err := decimal.NewFromString(strings.TrimSpace(r.FormValue("price")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price"))
			return
		}

		feeRatio := decimal.Zero
		if raw := strings.TrimSpace(r.FormValue("fee_ratio")); raw != "" {
			feeRatio, err = decimal.NewFromString(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid fee ratio"))
				return
			}
		}

		input := productsvc.CreateInput{
			Title:       title,
			Category:    category,
			Price:       price,
			FeeRatio:    feeRatio,
			StoreLevels: splitStoreLevels(r.FormValue("store_levels")),
			UploadedBy:  adminID,
		}
		if desc := strings.TrimSpace(r.FormValue("description")); desc != "" {
			input.Description = &desc
		}

		if uploads != nil {
			path, err := saveFormFile(r, uploads, "image", productUploadsSubdir)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if path != "" {
				input.ImagePath = &path
			}
		}

		product, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// UpdateProduct accepts the same multipart form as create; absent fields
// are left unchanged and a new image replaces the stored one.
func UpdateProduct(svc productsvc.Service, uploads fileStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := r.ParseMultipartForm(multipartMemoryBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		var input productsvc.UpdateInput
		if title := strings.TrimSpace(r.FormValue("title")); title != "" {
			input.Title = &title
		}
		if desc := strings.TrimSpace(r.FormValue("description")); desc != "" {
			input.Description = &desc
		}
		if category := strings.TrimSpace(r.FormValue("category")); category != "" {
			input.Category = &category
		}
		if raw := strings.TrimSpace(r.FormValue("price")); raw != "" {
			price, err := decimal.NewFromString(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price"))
				return
			}
			input.Price = &price
		}
		if raw := strings.TrimSpace(r.FormValue("fee_ratio")); raw != "" {
			ratio, err := decimal.NewFromString(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid fee ratio"))
				return
			}
			input.FeeRatio = &ratio
		}
		if raw := r.FormValue("store_levels"); raw != "" {
			input.StoreLevels = splitStoreLevels(raw)
		}

		if uploads != nil {
			path, err := saveFormFile(r, uploads, "image", productUploadsSubdir)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if path != "" {
				input.ImagePath = &path
			}
		}

		product, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"message": "Product deleted."})
	}
}

func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		products, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// ListAdoptedProducts returns the storefront catalog of claimed listings.
func ListAdoptedProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		products, err := svc.ListAdopted(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// ListSelectableProducts returns unclaimed listings a vendor can adopt,
// optionally narrowed with ?category=.
func ListSelectableProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		category := strings.TrimSpace(r.URL.Query().Get("category"))
		products, err := svc.ListSelectable(r.Context(), category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

func ListMyProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.ListMine(r.Context(), uid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// AdoptProduct claims an unadopted listing for the calling vendor.
func AdoptProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Adopt(r.Context(), uid, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}
