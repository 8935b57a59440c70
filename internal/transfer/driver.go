// Package transfer drives a migration run over a scene document: it
// classifies materials, splits objects that mix categories and writes the
// resulting target properties object by object.
package transfer

import (
	"errors"
	"fmt"
	"reflect"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Simouie/Project-Furnace/internal/document"
	"github.com/Simouie/Project-Furnace/internal/partition"
	"github.com/Simouie/Project-Furnace/internal/rules"
	"github.com/Simouie/Project-Furnace/pkg/schema"
)

// DefaultCacheSize is the number of classified materials kept per run.
const DefaultCacheSize = 256

// Options configures a Driver.
type Options struct {
	Rules      *rules.Ruleset
	Logger     *zap.Logger
	CacheSize  int
	AssetType  string // scene asset type; empty leaves the scene alone
	SkipHidden bool
}

// Driver runs the property transfer over one document.
type Driver struct {
	doc   document.Document
	rules *rules.Ruleset
	log   *zap.Logger
	opts  Options
	cache *lru.Cache[document.MaterialID, classified]
}

// classified is the cached result for one material.
type classified struct {
	record   schema.MaterialRecord
	category rules.Category
	usable   bool
}

// New returns a driver for doc.
func New(doc document.Document, opts Options) (*Driver, error) {
	if opts.Rules == nil {
		opts.Rules = rules.DefaultRuleset()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	cache, err := lru.New[document.MaterialID, classified](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating classification cache: %w", err)
	}
	return &Driver{
		doc:   doc,
		rules: opts.Rules,
		log:   opts.Logger,
		opts:  opts,
		cache: cache,
	}, nil
}

// Run processes every object in document order and reports what happened.
// Objects created by splits are transferred as part of their source object.
func (d *Driver) Run() *Report {
	d.cache.Purge()
	r := &Report{}

	if d.opts.AssetType != "" {
		if sw, ok := d.doc.(document.SceneWriter); ok {
			if err := sw.WriteSceneProperty(schema.KeyAssetType, d.opts.AssetType); err != nil {
				f := &WriteFailure{Op: "scene", Key: schema.KeyAssetType, Err: err}
				r.Failures = append(r.Failures, f)
				r.add(SeverityError, CodeSceneWriteFail, "", f.Error())
			}
		}
	}

	for _, h := range d.doc.Objects() {
		d.process(h, r)
	}

	d.log.Info("Transfer finished",
		zap.Int("transferred", r.Count(StateTransferred)),
		zap.Int("skipped", r.Count(StateUnclassified)),
		zap.Int("failures", len(r.Failures)),
		zap.Int("warnings", len(r.Warnings())))
	return r
}

// Reset clears the face properties of every mesh object so a scene can be
// transferred again from scratch. It returns how many objects were reset.
// Failures on single objects do not stop the others.
func (d *Driver) Reset() (int, error) {
	fr, ok := d.doc.(document.FaceResetter)
	if !ok {
		return 0, ErrResetUnsupported
	}
	var (
		n   int
		err error
	)
	for _, h := range d.doc.Objects() {
		if d.doc.ObjectType(h) != document.TypeMesh {
			continue
		}
		name := d.doc.ObjectName(h)
		if rerr := fr.ResetFaceProperties(h); rerr != nil {
			err = multierr.Append(err, &WriteFailure{Object: h, Name: name, Op: "reset", Err: rerr})
			d.log.Error("Reset failed", zap.String("object", name), zap.Error(rerr))
			continue
		}
		n++
	}
	d.log.Info("Face properties reset", zap.Int("objects", n))
	return n, err
}

func (d *Driver) process(h document.ObjectID, r *Report) {
	name := d.doc.ObjectName(h)
	log := d.log.With(zap.String("object", name))

	skip := func(err error) {
		r.Outcomes = append(r.Outcomes, Outcome{Object: h, Source: h, Name: name, State: StateUnclassified, Err: err})
		r.add(SeverityInfo, CodeSkipped, name, err.Error())
		log.Debug("Skipping object", zap.Error(err))
	}

	if d.doc.ObjectType(h) != document.TypeMesh {
		skip(ErrNotMesh)
		return
	}
	if d.opts.SkipHidden && d.doc.ObjectHidden(h) {
		skip(ErrHidden)
		return
	}

	plan := d.Plan(h, r)
	if plan.Empty() {
		skip(ErrNoUsableMaterial)
		return
	}
	log.Debug("Classified", zap.Stringers("kinds", plan.Kinds()))

	handles := []document.ObjectID{h}
	if !plan.Trivial() {
		var err error
		handles, err = d.doc.SplitFaces(h, plan)
		if err == nil && len(handles) != len(plan.Groups) {
			err = fmt.Errorf("document returned %d objects for %d groups", len(handles), len(plan.Groups))
		}
		if err != nil {
			f := &WriteFailure{Object: h, Name: name, Op: "split", Err: err}
			r.Failures = append(r.Failures, f)
			r.add(SeverityError, CodeSplitFailure, name, err.Error())
			r.Outcomes = append(r.Outcomes, Outcome{Object: h, Source: h, Name: name, State: StateClassified, Err: f})
			log.Error("Split failed", zap.Error(err))
			return
		}
		log.Debug("Split object", zap.Int("parts", len(handles)))
	}

	for i, sub := range handles {
		d.transfer(sub, h, plan.Groups[i].Kind, r)
	}
}

// Plan classifies the slots of h and returns how it would be split, without
// writing anything. Diagnostics raised while classifying go to r when it is
// not nil.
func (d *Driver) Plan(h document.ObjectID, r *Report) partition.Plan {
	if r == nil {
		r = &Report{}
	}
	return partition.Build(d.doc.FaceSlots(h), d.slotCategories(h, r))
}

// Category returns the classification of material m and whether it carries
// legacy fields.
func (d *Driver) Category(m document.MaterialID) (rules.Category, bool) {
	c := d.classify(m, &Report{})
	return c.category, c.usable
}

// slotCategories classifies every material slot of h.
func (d *Driver) slotCategories(h document.ObjectID, r *Report) []partition.SlotCategory {
	slots := d.doc.MaterialSlots(h)
	out := make([]partition.SlotCategory, 0, len(slots))
	for _, s := range slots {
		sc := partition.SlotCategory{Slot: s.Index}
		if !s.Empty() {
			c := d.classify(s.Material, r)
			sc.Category, sc.Usable = c.category, c.usable
		}
		out = append(out, sc)
	}
	return out
}

func (d *Driver) classify(m document.MaterialID, r *Report) classified {
	if c, ok := d.cache.Get(m); ok {
		return c
	}
	var c classified
	c.record, c.usable = d.doc.LegacyFields(m)
	if c.usable {
		c.record.Name = d.doc.MaterialName(m)
		c.category = rules.Classify(&c.record)
		if c.category.Kind == rules.KindSky {
			if _, _, err := rules.SkyIndex(c.record.Name); err != nil {
				r.add(SeverityWarning, CodeMalformedName, c.record.Name, err.Error())
				d.log.Warn("Malformed material name", zap.String("material", c.record.Name), zap.Error(err))
			}
		}
	}
	d.cache.Add(m, c)
	return c
}

// slotWork is one material slot present on the object being transferred.
type slotWork struct {
	slot  int
	mat   classified
	group *document.FaceGroup
}

// transfer builds and flushes every effect for one single-category object.
func (d *Driver) transfer(h, source document.ObjectID, kind rules.Kind, r *Report) {
	name := d.doc.ObjectName(h)
	log := d.log.With(zap.String("object", name))
	out := Outcome{Object: h, Source: source, Name: name, State: StatePartitioned, Category: rules.Category{Kind: kind}}

	faceSlots := d.doc.FaceSlots(h)
	slotCats := d.slotCategories(h, r)
	if again := partition.Build(faceSlots, slotCats); !again.Trivial() {
		r.add(SeverityWarning, CodeUnstableSplit, name, fmt.Sprintf("%v: kinds %v", ErrUnstablePartition, again.Kinds()))
		log.Warn("Split result mixes categories", zap.Stringers("kinds", again.Kinds()))
	}

	faces := make(map[int][]int)
	for f, s := range faceSlots {
		faces[s] = append(faces[s], f)
	}
	mats := make(map[int]document.MaterialID)
	for _, s := range d.doc.MaterialSlots(h) {
		mats[s.Index] = s.Material
	}
	var work []slotWork
	for _, sc := range slotCats {
		if !sc.Usable || len(faces[sc.Slot]) == 0 || sc.Category.Kind != kind {
			continue
		}
		work = append(work, slotWork{
			slot:  sc.Slot,
			mat:   d.classify(mats[sc.Slot], r),
			group: &document.FaceGroup{Slot: sc.Slot, Faces: faces[sc.Slot]},
		})
	}
	if len(work) > 0 && work[0].mat.category.Kind == rules.KindSky {
		out.Category = work[0].mat.category
	}

	var writes []document.Write
	object := func(effects []rules.Effect) {
		for _, e := range effects {
			writes = append(writes, document.Write{Key: e.Key, Value: e.Value})
		}
	}
	face := func(g *document.FaceGroup, effects []rules.Effect) {
		for _, e := range effects {
			writes = append(writes, document.Write{Group: g, Key: e.Key, Value: e.Value})
		}
	}

	// object-level flag effects come from the first material only
	var primary []rules.Effect
	collide := func(w slotWork, effects []rules.Effect) []rules.Effect {
		if len(effects) == 0 {
			return nil
		}
		if primary == nil {
			primary = effects
			return effects
		}
		if !reflect.DeepEqual(primary, effects) {
			msg := fmt.Sprintf("%v: slot %d (%s) ignored in favour of the first portal material", ErrFlagCollision, w.slot, w.mat.record.Name)
			r.add(SeverityWarning, CodeFlagCollision, name, msg)
			log.Warn("Conflicting object flags", zap.Int("slot", w.slot), zap.String("material", w.mat.record.Name))
		}
		return nil
	}

	// category defaults
	object(d.rules.ObjectDefaults(kind, name))
	for _, w := range work {
		face(w.group, d.rules.FaceDefaults(w.mat.category))
	}

	// field and flag mapping
	for _, w := range work {
		face(w.group, d.rules.FieldEffects(kind, &w.mat.record))
		f, o := d.rules.FlagEffects(kind, w.mat.record.Flags)
		face(w.group, f)
		object(collide(w, o))
	}

	// numeric transforms
	for _, w := range work {
		face(w.group, d.rules.NumericEffects(kind, &w.mat.record))
	}

	// name symbols: material names, then the object's own name
	for i, w := range work {
		f, o := d.rules.OverlayEffects(kind, d.rules.MaterialNameFlags(w.mat.record.Name))
		face(w.group, f)
		if i == 0 {
			object(o)
		}
	}
	object(d.rules.ObjectNameEffects(name))

	if err := d.flush(h, writes); err != nil {
		var f *WriteFailure
		if !errors.As(err, &f) {
			f = &WriteFailure{Object: h, Name: name, Op: "write", Err: err}
		}
		r.Failures = append(r.Failures, f)
		r.add(SeverityError, CodeWriteFailure, name, f.Error())
		out.Err = f
		r.Outcomes = append(r.Outcomes, out)
		log.Error("Write failed, object not committed", zap.Error(err))
		return
	}

	out.State = StateTransferred
	out.Writes = len(writes)
	r.Outcomes = append(r.Outcomes, out)
	log.Debug("Transferred", zap.Stringer("category", out.Category), zap.Int("writes", len(writes)))
}

// flush writes the buffered effects of one object, atomically when the
// document supports it.
func (d *Driver) flush(h document.ObjectID, writes []document.Write) error {
	name := d.doc.ObjectName(h)
	if bw, ok := d.doc.(document.BatchWriter); ok {
		if err := bw.WriteBatch(h, writes); err != nil {
			return &WriteFailure{Object: h, Name: name, Op: "write", Err: err}
		}
		return nil
	}
	for _, w := range writes {
		var err error
		if w.Group == nil {
			err = d.doc.WriteObjectProperty(h, w.Key, w.Value)
		} else {
			err = d.doc.WriteFaceProperty(h, *w.Group, w.Key, w.Value)
		}
		if err != nil {
			return &WriteFailure{Object: h, Name: name, Op: "write", Key: w.Key, Err: err}
		}
	}
	return nil
}
