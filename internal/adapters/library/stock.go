package library

import "github.com/mosaic-ui/mosaic/internal/core/ports"

// stock is the built-in collection shipped with the host.
var stock = []ports.LibraryComponent{
	{
		Name: "Badge",
		Source: `import { h } from 'ui-runtime';

const Badge = (props) => h('span', { 'class': 'badge ' + (props.tone || 'neutral') }, props.label || '');

export default Badge;
`,
	},
	{
		Name: "Card",
		Source: `import { h } from 'ui-runtime';

const Card = (props) => h('div', { 'class': 'card' },
  props.title ? h('h2', { 'class': 'card-title' }, props.title) : null,
  h('div', { 'class': 'card-body' }, props.body || ''));

export default Card;
`,
	},
	{
		Name: "Counter",
		Source: `import { h, useState } from 'ui-runtime';

const Counter = (props) => {
  const [count, setCount] = useState(props.start || 0);
  return h('button', { onClick: () => setCount(count + 1) }, String(count));
};

export default Counter;
`,
	},
	{
		Name: "Spinner",
		Source: `import { h } from 'ui-runtime';

const Spinner = () => h('div', { 'class': 'spinner' }, '...');

export default Spinner;
`,
		// Trivial and hot; shipped precompiled so a cold cache still skips
		// the front of the pipeline.
		Precompiled: `const { h } = __import('ui-runtime');

const Spinner = () => h('div', { 'class': 'spinner' }, '...');

module.exports.default = Spinner;
`,
	},
}
