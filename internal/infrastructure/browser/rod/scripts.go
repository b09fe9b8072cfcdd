package rod

// JS snippets evaluated against the host page. Element-bound scripts are
// function expressions where `this` is the element.

// clickScript dispatches the pointer/mouse sequence a human click produces,
// at the element's visible center, against the topmost element at that
// point. Degenerate boxes and dispatch exceptions fall back to a direct
// activation; the script never throws.
const clickScript = `function () {
	const r = this.getBoundingClientRect();
	if (!r.width || !r.height || typeof this.dispatchEvent !== 'function') {
		this.click();
		return 'direct';
	}
	const x = Math.min(Math.max(r.left + r.width / 2, 0), window.innerWidth - 1);
	const y = Math.min(Math.max(r.top + r.height / 2, 0), window.innerHeight - 1);
	const target = (document.elementFromPoint && document.elementFromPoint(x, y)) || this;
	const opts = { bubbles: true, composed: true, cancelable: true, view: window, clientX: x, clientY: y, button: 0 };
	try {
		const seq = [
			['pointer', 'pointerover'], ['mouse', 'mouseover'],
			['pointer', 'pointerenter'], ['mouse', 'mouseenter'],
			['pointer', 'pointerdown'], ['mouse', 'mousedown'],
		];
		for (const [kind, type] of seq) {
			target.dispatchEvent(kind === 'pointer' ? new PointerEvent(type, opts) : new MouseEvent(type, opts));
		}
		if (typeof target.focus === 'function') {
			try { target.focus(); } catch (e) {}
		}
		target.dispatchEvent(new PointerEvent('pointerup', opts));
		target.dispatchEvent(new MouseEvent('mouseup', opts));
		target.dispatchEvent(new MouseEvent('click', opts));
		return 'dispatched';
	} catch (e) {
		this.click();
		return 'fallback';
	}
}`

const activateScript = `function () { this.click(); }`

// affordanceScript injects the selection checkbox into a row, once.
const affordanceScript = `function () {
	if (this.querySelector('input[data-sweep-check]')) return false;
	const box = document.createElement('input');
	box.type = 'checkbox';
	box.setAttribute('data-sweep-check', '');
	box.style.cssText = 'margin-right:6px;pointer-events:auto;';
	box.addEventListener('click', (ev) => ev.stopPropagation());
	this.insertBefore(box, this.firstChild);
	return true;
}`

const setCheckedScript = `function (on) {
	const box = this.querySelector('input[data-sweep-check]');
	if (box) box.checked = !!on;
}`

const isCheckedScript = `function () {
	const box = this.querySelector('input[data-sweep-check]');
	return !!(box && box.checked);
}`

// treeChangeCallback is the name of the Go function exposed to the page for
// watcher notifications.
const treeChangeCallback = "__sweepTreeChanged"

// observerScript watches the navigation subtree and pings Go at most once
// per 200ms burst of mutations.
const observerScript = `() => {
	if (window.__sweepObserver) return;
	const target = document.querySelector('nav') || document.body;
	let pending = null;
	const ob = new MutationObserver(() => {
		if (pending) return;
		pending = setTimeout(() => {
			pending = null;
			if (window.__sweepTreeChanged) window.__sweepTreeChanged('tree');
		}, 200);
	});
	ob.observe(target, { childList: true, subtree: true });
	window.__sweepObserver = ob;
}`

const observerStopScript = `() => {
	if (window.__sweepObserver) {
		window.__sweepObserver.disconnect();
		window.__sweepObserver = null;
	}
}`

// quietScript toggles the popover-suppression style that keeps host hover
// popovers from covering menu targets mid-run.
const quietScript = `(on) => {
	const id = 'sweep-quiet-style';
	let style = document.getElementById(id);
	if (on) {
		if (!style) {
			style = document.createElement('style');
			style.id = id;
			style.textContent = '[role="tooltip"], [data-popover] { display: none !important; }';
			document.head.appendChild(style);
		}
	} else if (style) {
		style.remove();
	}
}`

// softNavScript routes through the host's history so the SPA stays alive.
const softNavScript = `(p) => {
	history.pushState({}, '', p);
	window.dispatchEvent(new PopStateEvent('popstate', { state: {} }));
}`
