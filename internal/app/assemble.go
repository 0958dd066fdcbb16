package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/wpreg/internal/config"
	"github.com/vk/wpreg/internal/ctxlog"
	"github.com/vk/wpreg/internal/cuts"
	"github.com/vk/wpreg/internal/producer"
	"github.com/vk/wpreg/internal/registry"
	"github.com/vk/wpreg/internal/selection"
	"github.com/vk/wpreg/internal/workpoint"
	"github.com/vk/wpreg/internal/wperr"
)

// Result is the output of one assembly pass.
type Result struct {
	Producers  []*producer.Config  `json:"producers" yaml:"producers"`
	Selections []*selection.Config `json:"selections" yaml:"selections"`
	Registry   []registry.Entry    `json:"registry" yaml:"registry"`
}

// Assemble runs the configuration-build pass. Any error aborts the whole
// pass, and the registry is only touched once every working point has been
// built and checked.
func (a *App) Assemble(ctx context.Context) (*Result, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("Assembly started.")

	model, err := a.loadModel(ctx)
	if err != nil {
		return nil, err
	}

	catalog, producers, err := assembleProducers(ctx, model)
	if err != nil {
		return nil, err
	}

	defs := make([]*workpoint.Definition, 0, len(model.WorkingPoints))
	selections := make([]*selection.Config, 0, len(model.WorkingPoints))
	emitted := make(map[string]bool)
	for _, wp := range model.WorkingPoints {
		def, err := buildDefinition(ctx, catalog, model, wp)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)

		// Repeats of one name either match (and are skipped) or are
		// rejected by the registry below.
		if emitted[def.Name()] {
			continue
		}
		sel, err := selection.BuildConfig(def)
		if err != nil {
			return nil, err
		}
		selections = append(selections, sel)
		emitted[def.Name()] = true
	}

	if err := a.registry.RegisterAll(ctx, defs); err != nil {
		return nil, err
	}

	a.logger.Info("Assembly finished.", "producers", len(producers), "working_points", len(selections))
	return &Result{
		Producers:  producers,
		Selections: selections,
		Registry:   a.registry.Entries(),
	}, nil
}

// Selection returns the selection config built for the named working point.
func (r *Result) Selection(name string) (*selection.Config, error) {
	for _, s := range r.Selections {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: '%s'", wperr.ErrUnknownWorkingPoint, name)
}

func (a *App) loadModel(ctx context.Context) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := config.NewModel()

	if a.config.IncludeBuiltins {
		for _, f := range a.fragments {
			if err := f.Contribute(ctx, model); err != nil {
				return nil, fmt.Errorf("fragment %s: %w", f.Name(), err)
			}
			logger.Debug("Applied built-in fragment.", "fragment", f.Name())
		}
	}

	if len(a.config.Paths) > 0 {
		loaded, err := a.loader.Load(ctx, a.config.Paths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := model.Merge(loaded); err != nil {
			return nil, err
		}
	}

	logger.Debug("Configuration model ready.", "models", len(model.Models), "working_points", len(model.WorkingPoints))
	return model, nil
}

// assembleProducers registers every model in a catalog and builds its
// producer config, in model ID order.
func assembleProducers(ctx context.Context, model *config.Model) (*producer.Catalog, []*producer.Config, error) {
	ids := make([]string, 0, len(model.Models))
	for id := range model.Models {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	catalog := producer.NewCatalog()
	producers := make([]*producer.Config, 0, len(ids))
	for _, id := range ids {
		def := model.Models[id]
		_, logger := ctxlog.With(ctx, "model", id)

		err := catalog.Register(producer.Model{
			ID:             def.ID,
			Categories:     def.Categories,
			RequiredInputs: def.RequiredInputs,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", def.Source, err)
		}

		cfg, err := catalog.Assemble(def.ID, def.WeightFiles, def.Inputs)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", def.Source, err)
		}
		producers = append(producers, cfg)
		logger.Debug("Producer config assembled.", "categories", len(def.Categories), "inputs", len(cfg.NamedInputs))
	}
	return catalog, producers, nil
}

// buildDefinition turns a loaded working point into a validated definition
// bound to its model's categories and producer outputs.
func buildDefinition(ctx context.Context, catalog *producer.Catalog, model *config.Model, wp *config.WorkingPoint) (*workpoint.Definition, error) {
	_, logger := ctxlog.With(ctx, "working_point", wp.Name)

	m, ok := catalog.Model(wp.Model)
	if !ok {
		return nil, fmt.Errorf("%w: working point '%s' (%s) refers to unknown model '%s'", wperr.ErrInvalidDefinition, wp.Name, wp.Source, wp.Model)
	}
	if len(wp.Cuts) != len(m.Categories) {
		return nil, fmt.Errorf("%w: working point '%s' (%s) has %d cuts but model '%s' has %d categories",
			wperr.ErrCategoryCountMismatch, wp.Name, wp.Source, len(wp.Cuts), m.ID, len(m.Categories))
	}

	table, err := cuts.New(wp.Cuts)
	if err != nil {
		return nil, fmt.Errorf("working point '%s' (%s): %w", wp.Name, wp.Source, err)
	}

	label := model.Models[wp.Model].ProducerLabel
	scoreSource := wp.ScoreSource
	if scoreSource == "" && label != "" {
		scoreSource = producer.ValueMapRef(label, m.ID)
	}
	categorySource := wp.CategorySource
	if categorySource == "" && label != "" {
		categorySource = producer.CategoryMapRef(label, m.ID)
	}

	def, err := workpoint.New(wp.Name, scoreSource, categorySource, table,
		workpoint.WithApproval(wp.Approved),
		workpoint.WithDescription(wp.Description),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", wp.Source, err)
	}

	if wp.Fingerprint != "" && wp.Fingerprint != def.Fingerprint() {
		return nil, fmt.Errorf("%s: pinned fingerprint does not match definition: %w", wp.Source,
			&registry.ConflictError{Name: wp.Name, Existing: wp.Fingerprint, Proposed: def.Fingerprint()})
	}

	logger.Debug("Working point defined.", "fingerprint", def.Fingerprint(), "categories", table.Len(), "approved", def.Approved())
	return def, nil
}
