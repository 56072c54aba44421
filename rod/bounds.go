package rod

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/domsift/domsift"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements domsift.BoundsExtractor at compile time.
var _ domsift.BoundsExtractor = (*Fetcher)(nil)

// boundsScript collects the viewport geometry of every visible element.
// Elements smaller than a pixel, hidden elements, and elements entirely
// outside the viewport are excluded. Text content is trimmed to 100
// characters with newlines and tabs collapsed to spaces.
const boundsScript = `() => {
	function parentSelector(el) {
		const parent = el.parentElement;
		if (!parent) return 'body';
		if (parent.id) return '#' + parent.id;
		const classes = Array.from(parent.classList).filter(c => c.trim()).join('.');
		const tag = parent.tagName.toLowerCase();
		return classes ? tag + '.' + classes : tag;
	}

	function siblingIndex(el) {
		const parent = el.parentElement;
		if (!parent) return 0;
		for (let i = 0; i < parent.children.length; i++) {
			if (parent.children[i] === el) return i;
		}
		return 0;
	}

	const bounds = [];
	for (const el of document.querySelectorAll('*')) {
		const rect = el.getBoundingClientRect();
		const style = window.getComputedStyle(el);

		if (rect.width <= 1 || rect.height <= 1) continue;
		if (style.visibility === 'hidden' || style.display === 'none') continue;
		if (rect.top >= window.innerHeight || rect.bottom <= 0) continue;
		if (rect.left >= window.innerWidth || rect.right <= 0) continue;

		bounds.push({
			x: Number(rect.x) || 0,
			y: Number(rect.y) || 0,
			width: Number(rect.width) || 0,
			height: Number(rect.height) || 0,
			tag_name: el.tagName.toLowerCase(),
			class_name: el.getAttribute('class') || '',
			id: el.id || '',
			text_content: (el.textContent || '').trim().substring(0, 100).replace(/[\r\n\t]/g, ' '),
			parent_selector: parentSelector(el),
			sibling_index: siblingIndex(el)
		});
	}
	return JSON.stringify(bounds);
}`

// ExtractBounds navigates to the URL and returns the bounding boxes of all
// visible elements in the viewport.
func (f *Fetcher) ExtractBounds(ctx context.Context, url string) ([]domsift.ElementBounds, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return nil, err
	}

	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	res, err := page.Eval(boundsScript)
	if err != nil {
		return nil, err
	}

	var bounds []domsift.ElementBounds
	if err := json.Unmarshal([]byte(res.Value.Str()), &bounds); err != nil {
		return nil, fmt.Errorf("decoding element bounds: %w", err)
	}

	f.manager.IncrementPageCount()
	return bounds, nil
}
