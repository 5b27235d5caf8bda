package product

import (
	"mime/multipart"
	"net/http"

	"nutrisur/infras/otel"
	"nutrisur/internal/domains/product/model"
	"nutrisur/internal/domains/product/model/dto"
	"nutrisur/internal/domains/product/service"
	"nutrisur/shared"
	"nutrisur/shared/constant"
	gDto "nutrisur/shared/dto"
	"nutrisur/shared/failure"
	"nutrisur/shared/validator"
	"nutrisur/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const formImage = "image"

type Handler struct {
	service service.Product
	otel    otel.Otel
}

func New(service service.Product, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/products", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateProduct)
		routerGroup.Get("/", handler.GetProducts)
		routerGroup.Get("/catalog", handler.GetCatalog)
		routerGroup.Get("/{id}", handler.GetProductByID)
		routerGroup.Patch("/{id}", handler.UpdateProduct)
		routerGroup.Delete("/{id}", handler.DeleteProduct)
	})
}

// CreateProduct handles the creation of a new product.
// @Summary Create a new product
// @Description Create a product with an optional image stored in object storage.
// @Tags Product
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Product name"
// @Param description formData string false "Product description"
// @Param price formData number true "Unit price"
// @Param active formData boolean false "Whether the product can be ordered"
// @Param image formData file false "Product image"
// @Success 201 {object} response.Message "Product created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/products [post]
// @Security BearerAuth
func (handler *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateProduct")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.CreateProductRequest{
		Name:        r.FormValue(model.FieldName),
		Description: r.FormValue(model.FieldDescription),
		Active:      shared.ConvertStringToBool(r.FormValue(model.FieldActive)),
	}

	if price := r.FormValue(model.FieldPrice); price != constant.Empty {
		value, err := shared.ConvertStringToFloat(price)
		if err != nil {
			response.WithError(w, failure.BadRequestFromString("price must be a number"))

			return
		}

		req.Price = value
	}

	file := attachImage(r, &req.Image, &req.ImageFile)
	if file != nil {
		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create product")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Product created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Product created successfully")
}

// GetProducts lists products.
// @Summary Get all products
// @Description Retrieve products with optional filtering and pagination.
// @Tags Product
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetProductsResponse] "List of products"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/products [get]
func (handler *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProducts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := r.URL.Query().Get(model.FieldName); name != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	products, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get products")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, products)
}

// GetCatalog lists the products that can be ordered.
// @Summary Get the product catalogue
// @Description Every active product sorted by name.
// @Tags Product
// @Produce json
// @Success 200 {object} response.Data[[]dto.ProductResponse] "Catalogue"
// @Failure 500 {object} response.Error
// @Router /v1/products/catalog [get]
func (handler *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCatalog")
	defer scope.End()

	catalog, err := handler.service.Catalog(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get catalog")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, catalog)
}

// GetProductByID retrieves a product by its ID.
// @Summary Get a product by ID
// @Tags Product
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.Data[dto.ProductResponse] "Product details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/products/{id} [get]
func (handler *Handler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProductByID")
	defer scope.End()

	product, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get product by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, product)
}

// UpdateProduct updates an existing product.
// @Summary Update a product by ID
// @Tags Product
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product ID"
// @Param name formData string false "Product name"
// @Param description formData string false "Product description"
// @Param price formData number false "Unit price"
// @Param active formData boolean false "Whether the product can be ordered"
// @Param image formData file false "Replacement image"
// @Success 200 {object} response.Message "Product updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/products/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateProduct")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.UpdateProductRequest{
		Name:        r.FormValue(model.FieldName),
		Description: r.FormValue(model.FieldDescription),
		Active:      shared.ConvertStringToBool(r.FormValue(model.FieldActive)),
	}

	if price := r.FormValue(model.FieldPrice); price != constant.Empty {
		value, err := shared.ConvertStringToFloat(price)
		if err != nil {
			response.WithError(w, failure.BadRequestFromString("price must be a number"))

			return
		}

		req.Price = &value
	}

	file := attachImage(r, &req.Image, &req.ImageFile)
	if file != nil {
		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update product")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Product updated successfully")
}

// DeleteProduct deletes a product and its image.
// @Summary Delete a product by ID
// @Tags Product
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.Message "Product deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/products/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteProduct")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete product")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Product deleted successfully")
}

// attachImage fills header and file when the form carries an image. The caller closes the file.
func attachImage(r *http.Request, header **multipart.FileHeader, file *multipart.File) multipart.File {
	f, fh, err := r.FormFile(formImage)
	if err != nil {
		return nil
	}

	*header = fh
	*file = f

	return f
}
