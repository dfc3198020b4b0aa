package template

// StyleCSS lays out one verse per block: Hebrew right-aligned with its
// numeral boxed beside it, English below.
const StyleCSS = `
body > div {
  margin: 0 auto;
  padding: 20px;
  max-width: 48em;
  box-sizing: border-box;
  background-color: #fff;
  line-height: 1.6;
  color: #333333;
}

h1 {
  text-align: center;
  font-size: 1.5em;
  margin: 1em auto 2em;
  font-weight: bold;
}

h2.chapter {
  font-size: 1.2em;
  margin: 1.5em 0 1em;
}

.verse {
  break-inside: avoid;
  page-break-inside: avoid;
  margin-bottom: 10pt;
}

.hebrew-row {
  display: flex;
  flex-direction: row-reverse;
  align-items: flex-start;
}

.hebrew {
  flex: 0 0 90%;
  margin: 0;
  text-align: right;
  font-family: "Taamey Frank CLM", "SBL Hebrew", serif;
  font-size: 1.2em;
}

.numeral {
  flex: 0 0 10%;
  text-align: left;
}

.numeral span {
  border: 1px solid #333333;
  padding: 0 0.3em;
  margin-right: 10pt;
}

.english {
  margin: 5pt 0 0;
  font-family: "Cardo", serif;
}

.separator {
  text-align: center;
  margin: 0.5em 0;
}

footer {
  text-align: center;
  font-size: 0.9em;
  margin-top: 2em;
}
`
