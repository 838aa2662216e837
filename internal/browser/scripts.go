package browser

// Scripts evaluated inside the page. Each one is a single arrow function
// so playwright passes the argument through; all of them are read-only
// except stampScript.

// snapshotScript walks every element under body in document order and
// captures the raw material for the tagging pass: tag name, the handful
// of attributes the label strategies read, class list, first direct text
// child, computed visibility, and whether the element or an ancestor
// matches one of the excluded selectors. Broken selectors are skipped
// rather than failing the walk.
func snapshotScript() string {
	return `(excluded) => {
		const root = document.body;
		if (!root) return [];

		const labelAttrs = ['placeholder', 'data-placeholder', 'aria-label', 'name', 'title', 'id'];

		const isVisible = (el) => {
			if (el.getClientRects().length === 0) return false;
			const style = window.getComputedStyle(el);
			return style.visibility !== 'hidden' &&
				style.display !== 'none' &&
				style.opacity !== '0';
		};

		const isExcluded = (el) => {
			for (const sel of excluded) {
				try {
					if (el.closest(sel)) return true;
				} catch (e) {
					// malformed selector in config, ignore
				}
			}
			return false;
		};

		const directText = (el) => {
			for (const child of el.childNodes) {
				if (child.nodeType !== Node.TEXT_NODE) continue;
				const text = child.textContent.trim();
				if (text) return text;
			}
			return '';
		};

		const result = [];
		const walker = document.createTreeWalker(root, NodeFilter.SHOW_ELEMENT);
		let index = 0;

		for (let el = walker.nextNode(); el; el = walker.nextNode()) {
			const attrs = {};
			for (const name of labelAttrs) {
				const value = el.getAttribute(name);
				if (value !== null) attrs[name] = value;
			}

			result.push({
				index: index++,
				tagName: el.tagName,
				attributes: attrs,
				classes: Array.from(el.classList),
				directText: directText(el),
				visible: isVisible(el),
				excluded: isExcluded(el)
			});
		}

		return result;
	}`
}

// stampScript re-walks the body with the same walker semantics as the
// snapshot and writes data-tag-id on the elements picked by the tagger.
// Write failures on individual nodes are swallowed: the records were
// already decided Go-side.
func stampScript() string {
	return `(ids) => {
		const root = document.body;
		if (!root) return 0;

		const walker = document.createTreeWalker(root, NodeFilter.SHOW_ELEMENT);
		let index = 0;
		let stamped = 0;

		for (let el = walker.nextNode(); el; el = walker.nextNode()) {
			const id = ids[String(index++)];
			if (id === undefined) continue;
			try {
				el.setAttribute('data-tag-id', id);
				stamped++;
			} catch (e) {
				// read-only node, keep going
			}
		}

		return stamped;
	}`
}

// visibleTextScript joins the trimmed contents of text nodes whose
// parent is rendered, one per line.
func visibleTextScript() string {
	return `() => {
		const root = document.body;
		if (!root) return '';

		const walker = document.createTreeWalker(root, NodeFilter.SHOW_TEXT, {
			acceptNode: (node) => {
				const parent = node.parentElement;
				if (!parent) return NodeFilter.FILTER_REJECT;
				const style = window.getComputedStyle(parent);
				if (style.display === 'none' || style.visibility === 'hidden') {
					return NodeFilter.FILTER_REJECT;
				}
				return NodeFilter.FILTER_ACCEPT;
			}
		});

		const parts = [];
		for (let node = walker.nextNode(); node; node = walker.nextNode()) {
			const text = node.textContent.trim();
			if (text) parts.push(text);
		}

		return parts.join('\n').trim();
	}`
}

// selectorCandidatesScript resolves a tagged element and produces an
// ordered list of candidate selectors, most specific first: QA
// attributes, id, name, aria-label/role, input type with placeholder,
// stable-looking classes, title, and finally a short nth-child path.
func selectorCandidatesScript() string {
	return `(tagId) => {
		const el = document.querySelector('[data-tag-id="' + tagId + '"]');
		if (!el) return null;

		const tag = el.tagName.toLowerCase();
		const selectors = [];

		const qaAttrs = ['data-test-id', 'data-testid', 'data-test', 'data-qa', 'data-cy'];
		for (const attr of qaAttrs) {
			const val = el.getAttribute(attr);
			if (val) {
				selectors.push(tag + '[' + attr + '="' + val + '"]');
				break;
			}
		}

		if (el.id && /^[a-zA-Z]/.test(el.id) && !el.id.includes(' ')) {
			selectors.push('#' + el.id);
		}

		if (el.name && ['input', 'select', 'textarea', 'button'].includes(tag)) {
			selectors.push(tag + '[name="' + el.name + '"]');
		}

		const ariaLabel = el.getAttribute('aria-label');
		if (ariaLabel && ariaLabel.length < 80) {
			selectors.push('[aria-label="' + ariaLabel + '"]');
		}

		const role = el.getAttribute('role');
		if (role) {
			if (ariaLabel) {
				selectors.push('[role="' + role + '"][aria-label="' + ariaLabel + '"]');
			} else {
				selectors.push('[role="' + role + '"]');
			}
		}

		if (el.type && tag === 'input') {
			if (el.placeholder) {
				selectors.push('input[type="' + el.type + '"][placeholder="' + el.placeholder + '"]');
			} else {
				selectors.push('input[type="' + el.type + '"]');
			}
		}

		if (el.className && typeof el.className === 'string') {
			const classes = el.className.split(' ')
				.filter(c => c && !c.match(/^[0-9]/) && c.length < 40 && !c.match(/^[a-f0-9]{8,}$/))
				.slice(0, 2);
			if (classes.length > 0) {
				selectors.push('.' + classes.join('.'));
			}
		}

		const title = el.getAttribute('title');
		if (title && title.length < 50) {
			selectors.push('[title="' + title + '"]');
		}

		if (selectors.length === 0) {
			let path = [];
			let current = el;
			let depth = 0;

			while (current && current.tagName && depth < 3) {
				const t = current.tagName.toLowerCase();
				if (current.id) {
					path.unshift('#' + current.id);
					break;
				}
				const index = Array.from(current.parentNode?.children || []).indexOf(current);
				if (index >= 0) {
					path.unshift(t + ':nth-child(' + (index + 1) + ')');
				}
				current = current.parentElement;
				depth++;
			}

			if (path.length > 0) {
				selectors.push(path.join(' > '));
			} else {
				selectors.push(tag);
			}
		}

		return { selectors: selectors };
	}`
}
