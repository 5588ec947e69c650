package integration

import (
	"context"

	"github.com/jeandelest/Queen-Back-Office/internal/models"
	"github.com/jeandelest/Queen-Back-Office/internal/services/cache"
)

// parseContext is the state of one integration run. It is created per archive
// and handed to each manifest processor in turn.
type parseContext struct {
	ctx      context.Context
	archive  *Archive
	gateways Gateways
	result   *models.IntegrationResult
	events   []cache.Event
}

func newParseContext(ctx context.Context, archive *Archive, gateways Gateways) *parseContext {
	return &parseContext{
		ctx:      ctx,
		archive:  archive,
		gateways: gateways,
		result:   models.NewIntegrationResult(),
	}
}

func (pc *parseContext) emit(events ...cache.Event) {
	pc.events = append(pc.events, events...)
}
