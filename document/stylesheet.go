package document

// printStylesheet translates the utility classes used by the preview markup
// into plain CSS for the standalone print document
const printStylesheet = `
.print-content {
  width: 100%;
  max-width: none;
  margin: 0;
  padding: 0;
}

.flex { display: flex; }
.flex-1 { flex: 1 1 0%; }
.grid { display: grid; }
.grid-cols-2 { grid-template-columns: repeat(2, minmax(0, 1fr)); }
.gap-8 { gap: 2rem; }
.items-center { align-items: center; }
.items-start { align-items: flex-start; }
.space-y-3 > * + * { margin-top: 0.75rem; }
.space-y-2 > * + * { margin-top: 0.5rem; }
.mb-8 { margin-bottom: 2rem; }
.mb-6 { margin-bottom: 1.5rem; }
.mt-1 { margin-top: 0.25rem; }
.mt-2 { margin-top: 0.5rem; }
.mt-3 { margin-top: 0.75rem; }
.mt-10 { margin-top: 2.5rem; }
.ml-2 { margin-left: 0.5rem; }
.ml-4 { margin-left: 1rem; }
.ml-6 { margin-left: 1.5rem; }
.ml-8 { margin-left: 2rem; }
.pl-6 { padding-left: 1.5rem; }
.p-3 { padding: 0.75rem; }
.p-4 { padding: 1rem; }
.pt-6 { padding-top: 1.5rem; }
.px-2 { padding-left: 0.5rem; padding-right: 0.5rem; }
.py-1 { padding-top: 0.25rem; padding-bottom: 0.25rem; }
.py-2 { padding-top: 0.5rem; padding-bottom: 0.5rem; }
.w-16 { width: 4rem; }
.min-w-0 { min-width: 0px; }
.max-w-4xl { max-width: 56rem; }
.mx-auto { margin-left: auto; margin-right: auto; }
.text-sm { font-size: 0.875rem; line-height: 1.25rem; }
.text-xs { font-size: 0.75rem; line-height: 1rem; }
.text-lg { font-size: 1.125rem; line-height: 1.75rem; }
.leading-6 { line-height: 1.5rem; }
.font-bold { font-weight: 700; }
.font-semibold { font-weight: 600; }
.font-medium { font-weight: 500; }
.text-gray-600 { color: #4b5563; }
.text-gray-500 { color: #6b7280; }
.text-gray-400 { color: #9ca3af; }
.text-red-600 { color: #dc2626; }
.text-blue-600 { color: #2563eb; }
.text-center { text-align: center; }
.text-right { text-align: right; }
.border { border: 1px solid #d1d5db; }
.border-t { border-top: 1px solid #e5e7eb; }
.border-r { border-right: 1px solid #d1d5db; }
.border-l-4 { border-left-width: 4px; border-left-style: solid; }
.border-gray-300 { border-color: #d1d5db; }
.border-gray-200 { border-color: #e5e7eb; }
.border-yellow-400 { border-color: #f59e0b; }
.bg-white { background-color: #ffffff; }
.bg-gray-50 { background-color: #f9fafb; }
.bg-yellow-100 { background-color: #fef3c7; }
.rounded { border-radius: 0.25rem; }
.rounded-md { border-radius: 0.375rem; }
.overflow-hidden { overflow: hidden; }
.underline { text-decoration: underline; }
.object-contain { object-fit: contain; }

.border-b { border-bottom: none; }

img {
  max-width: 100%;
  height: auto;
  page-break-inside: avoid;
  display: block;
}

.clause-detail { display: none; }

body.template-detailed .clause-detail { display: block; }

body.template-compact {
  font-size: 11px;
  line-height: 1.25;
}
body.template-compact img { display: none; }
body.template-compact .space-y-3 > * + * { margin-top: 0.375rem; }
body.template-compact .space-y-2 > * + * { margin-top: 0.25rem; }
body.template-compact .mb-6 { margin-bottom: 0.75rem; }
body.template-compact .mb-8 { margin-bottom: 1rem; }
body.template-compact .mt-3 { margin-top: 0.375rem; }
body.template-compact .mt-10 { margin-top: 1.25rem; }

input[type="number"], input[type="text"] {
  background: transparent;
  border: none;
  padding: 0;
  margin: 0;
  font-family: inherit;
  font-size: inherit;
  color: inherit;
  outline: none;
  box-shadow: none;
}

@media print {
  body {
    -webkit-print-color-adjust: exact;
    print-color-adjust: exact;
  }
  .bg-yellow-100 { background-color: #fef3c7 !important; }
  .border-yellow-400 { border-color: #f59e0b !important; }
  .text-red-600 { color: #dc2626 !important; }
  .bg-gray-50 { background-color: #f9fafb !important; }
  img { page-break-inside: avoid !important; }
}
`
