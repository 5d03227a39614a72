package countdown

// DefaultMarker is the attribute that opts an element into AttachAll.
const DefaultMarker = "countdown"

// Registry owns the widgets attached through it, one per element, and the
// process-wide defaults they start from. It belongs to a single host loop.
type Registry struct {
	host     Host
	defaults Options
	widgets  map[Element]*Widget
	order    []Element
}

// NewRegistry builds a registry whose widgets start from defaults
// (usually DefaultOptions with the user's configuration applied).
func NewRegistry(host Host, defaults Options) *Registry {
	return &Registry{
		host:     host,
		defaults: defaults,
		widgets:  make(map[Element]*Widget),
	}
}

// Defaults returns the options every new widget starts from.
func (r *Registry) Defaults() Options { return r.defaults }

// Attach returns the widget bound to el, creating it on first use.
// Configuration precedence: registry defaults, then the element's data-*
// attributes, then opts.
func (r *Registry) Attach(el Element, opts ...Option) *Widget {
	if w, ok := r.widgets[el]; ok {
		return w
	}
	o := withAttrs(r.defaults, el, r.host.logf)
	o = o.Apply(opts...)
	w := New(el, r.host, o)
	r.widgets[el] = w
	r.order = append(r.order, el)
	return w
}

// AttachAll attaches every descendant of root carrying marker.
func (r *Registry) AttachAll(root Element, marker string, opts ...Option) []*Widget {
	if marker == "" {
		marker = DefaultMarker
	}
	var out []*Widget
	for _, el := range root.Find(marker) {
		out = append(out, r.Attach(el, opts...))
	}
	return out
}

// Lookup returns the widget attached to el, if any.
func (r *Registry) Lookup(el Element) (*Widget, bool) {
	w, ok := r.widgets[el]
	return w, ok
}

// Detach destroys the widget on el and forgets it, so a later Attach
// starts fresh.
func (r *Registry) Detach(el Element) {
	w, ok := r.widgets[el]
	if !ok {
		return
	}
	w.Destroy()
	delete(r.widgets, el)
	for i, e := range r.order {
		if e == el {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Widgets lists attached widgets in attach order.
func (r *Registry) Widgets() []*Widget {
	out := make([]*Widget, 0, len(r.order))
	for _, el := range r.order {
		out = append(out, r.widgets[el])
	}
	return out
}

func (r *Registry) Len() int { return len(r.widgets) }

// Each runs fn on every attached widget in attach order.
func (r *Registry) Each(fn func(*Widget)) {
	for _, w := range r.Widgets() {
		fn(w)
	}
}
