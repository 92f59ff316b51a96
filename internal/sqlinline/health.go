package sqlinline

const QHealthPing = `--sql f6cc02ed-8351-486e-bde1-c038af6043f6
select 1;
`
