package api

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/labunify/internal/i18n"
	"github.com/terraincognita07/labunify/internal/services"
	"github.com/terraincognita07/labunify/internal/termstore"
	"go.uber.org/zap"
)

type Handler struct {
	unification      *services.UnificationService
	conversions      *services.ConversionService
	admin            *services.TermAdminService
	transfer         *services.TransferService
	i18n             *i18n.Manager
	logger           *zap.Logger
	validate         *validator.Validate
	defaultThreshold float64
}

// NewHandler wires the services over store. cache may be nil, in which case
// every conversion rebuilds its graph.
func NewHandler(store termstore.Store, cache services.GraphCache, i18nManager *i18n.Manager, logger *zap.Logger, defaultThreshold float64) (*Handler, error) {
	if store == nil {
		return nil, errors.New("term store is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if math.IsNaN(defaultThreshold) || defaultThreshold < 0 || defaultThreshold > 100 {
		return nil, services.ErrInvalidThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		unification:      services.NewUnificationService(store),
		conversions:      services.NewConversionService(store, cache, logger),
		admin:            services.NewTermAdminService(store, cache),
		transfer:         services.NewTransferService(store),
		i18n:             i18nManager,
		logger:           logger,
		validate:         newPayloadValidator(),
		defaultThreshold: defaultThreshold,
	}, nil
}

// newPayloadValidator reports field errors under their json names.
func newPayloadValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}
